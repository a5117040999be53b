package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounder-backend/internal/domain"
	"github.com/gdugdh24/cofounder-backend/internal/usecase/interaction"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type InteractionHandler struct {
	interactionUseCase *interaction.InteractionUseCase
	log                logrus.FieldLogger
}

func NewInteractionHandler(interactionUseCase *interaction.InteractionUseCase, log logrus.FieldLogger) *InteractionHandler {
	return &InteractionHandler{
		interactionUseCase: interactionUseCase,
		log:                log,
	}
}

// InteractResponse reports what a view or like did
type InteractResponse struct {
	Success bool                     `json:"success"`
	Action  domain.InteractionAction `json:"action"`
}

// LikeStatusResponse reports whether the caller currently likes a profile
type LikeStatusResponse struct {
	Success  bool `json:"success"`
	HasLiked bool `json:"hasLiked"`
}

// Interact handles POST /api/cofounder/interact
// @Summary Record a view or toggle a like
// @Tags interactions
// @Accept json
// @Produce json
// @Param request body interaction.InteractRequest true "Interaction"
// @Success 200 {object} InteractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cofounder/interact [post]
func (h *InteractionHandler) Interact(c *gin.Context) {
	var req interaction.InteractRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	action, err := h.interactionUseCase.Record(c.Request.Context(), middleware.VisitorID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInteraction), errors.Is(err, domain.ErrInvalidProfileID):
			fail(c, http.StatusBadRequest, "Invalid request")
		case errors.Is(err, domain.ErrProfileNotFound):
			fail(c, http.StatusNotFound, "Profile not found")
		default:
			requestLog(h.log, c).WithError(err).Error("interaction failed")
			fail(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	c.JSON(http.StatusOK, InteractResponse{Success: true, Action: action})
}

// LikeStatus handles GET /api/cofounder/interact?profileId=
// @Summary Check whether the caller likes a profile
// @Tags interactions
// @Produce json
// @Param profileId query string true "Profile ID"
// @Success 200 {object} LikeStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /cofounder/interact [get]
func (h *InteractionHandler) LikeStatus(c *gin.Context) {
	profileID := c.Query("profileId")
	if profileID == "" {
		fail(c, http.StatusBadRequest, "Profile ID required")
		return
	}

	liked, err := h.interactionUseCase.HasLiked(c.Request.Context(), profileID, middleware.VisitorID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInteraction):
			fail(c, http.StatusBadRequest, "Profile ID required")
		case errors.Is(err, domain.ErrInvalidProfileID):
			fail(c, http.StatusBadRequest, "Invalid request")
		default:
			requestLog(h.log, c).WithError(err).Error("like status failed")
			fail(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	c.JSON(http.StatusOK, LikeStatusResponse{Success: true, HasLiked: liked})
}
