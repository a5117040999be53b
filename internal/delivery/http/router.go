package http

import (
	"net/http"

	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounder-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Router struct {
	cofounderHandler   *handler.CofounderHandler
	interactionHandler *handler.InteractionHandler
	log                logrus.FieldLogger
}

func NewRouter(
	cofounderHandler *handler.CofounderHandler,
	interactionHandler *handler.InteractionHandler,
	log logrus.FieldLogger,
) *Router {
	return &Router{
		cofounderHandler:   cofounderHandler,
		interactionHandler: interactionHandler,
		log:                log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.Recovery(r.log),
		middleware.RequestLogger(r.log),
		middleware.CORS(),
	)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"status":  "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	api := router.Group("/api/cofounder")
	{
		api.POST("/submit", r.cofounderHandler.Submit)
		api.GET("/profiles", r.cofounderHandler.ListProfiles)
		api.GET("/check-email/:email", r.cofounderHandler.CheckEmail)

		interact := api.Group("/interact")
		interact.Use(middleware.Visitor())
		{
			interact.POST("", r.interactionHandler.Interact)
			interact.GET("", r.interactionHandler.LikeStatus)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Success: false, Message: "Not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handler.ErrorResponse{Success: false, Message: "Method not allowed"})
	})

	return router
}
