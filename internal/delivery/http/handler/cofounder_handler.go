package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/listing"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/submission"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CofounderHandler struct {
	submissionUseCase *submission.SubmissionUseCase
	listingUseCase    *listing.ListingUseCase
	log               logrus.FieldLogger
}

func NewCofounderHandler(
	submissionUseCase *submission.SubmissionUseCase,
	listingUseCase *listing.ListingUseCase,
	log logrus.FieldLogger,
) *CofounderHandler {
	return &CofounderHandler{
		submissionUseCase: submissionUseCase,
		listingUseCase:    listingUseCase,
		log:               log,
	}
}

// SubmitResponse is returned after a profile is stored
type SubmitResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ProfileID string `json:"profileId"`
}

// ProfilesResponse is the public directory
type ProfilesResponse struct {
	Success  bool                   `json:"success"`
	Profiles []domain.PublicProfile `json:"profiles"`
	Count    int                    `json:"count"`
}

// CheckEmailResponse reports whether an email is taken
type CheckEmailResponse struct {
	Success bool `json:"success"`
	Exists  bool `json:"exists"`
}

// Submit handles POST /api/cofounder/submit
// @Summary Submit a co-founder profile
// @Tags cofounder
// @Accept json
// @Produce json
// @Param request body submission.SubmitRequest true "Profile"
// @Success 201 {object} SubmitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cofounder/submit [post]
func (h *CofounderHandler) Submit(c *gin.Context) {
	var req submission.SubmitRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	profileID, err := h.submissionUseCase.Submit(c.Request.Context(), &req)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrMissingRequiredFields):
			fail(c, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, domain.ErrInsufficientPrompts):
			fail(c, http.StatusBadRequest, "Please answer at least 3 prompts")
		case errors.Is(err, domain.ErrDuplicateEmail):
			fail(c, http.StatusConflict, "A profile with this email already exists.")
		case errors.As(err, &verr):
			fail(c, http.StatusBadRequest, verr.Error())
		default:
			requestLog(h.log, c).WithError(err).Error("profile submission failed")
			fail(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{
		Success:   true,
		Message:   "Profile submitted successfully!",
		ProfileID: profileID,
	})
}

// ListProfiles handles GET /api/cofounder/profiles
// @Summary List public profiles
// @Tags cofounder
// @Produce json
// @Success 200 {object} ProfilesResponse
// @Failure 500 {object} ErrorResponse
// @Router /cofounder/profiles [get]
func (h *CofounderHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.listingUseCase.ListPublicProfiles(c.Request.Context())
	if err != nil {
		requestLog(h.log, c).WithError(err).Error("listing profiles failed")
		fail(c, http.StatusInternalServerError, "Failed to fetch profiles")
		return
	}

	c.JSON(http.StatusOK, ProfilesResponse{
		Success:  true,
		Profiles: profiles,
		Count:    len(profiles),
	})
}

// CheckEmail handles GET /api/cofounder/check-email/:email
// @Summary Check whether an email already has a profile
// @Tags cofounder
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} CheckEmailResponse
// @Failure 500 {object} ErrorResponse
// @Router /cofounder/check-email/{email} [get]
func (h *CofounderHandler) CheckEmail(c *gin.Context) {
	exists, err := h.submissionUseCase.EmailExists(c.Request.Context(), c.Param("email"))
	if err != nil {
		requestLog(h.log, c).WithError(err).Error("email check failed")
		fail(c, http.StatusInternalServerError, "Failed to check email")
		return
	}

	c.JSON(http.StatusOK, CheckEmailResponse{Success: true, Exists: exists})
}
