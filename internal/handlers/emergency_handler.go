package handlers

import (
	"net/http"

	"reliefhub_backend/internal/middleware"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	*BaseHandler
	emergencyService services.EmergencyService
	actionService    services.ActionService
}

func NewEmergencyHandler(base *BaseHandler, emergencyService services.EmergencyService, actionService services.ActionService) *EmergencyHandler {
	return &EmergencyHandler{
		BaseHandler:      base,
		emergencyService: emergencyService,
		actionService:    actionService,
	}
}

func (h *EmergencyHandler) RegisterRoutes(r *gin.RouterGroup) {
	emergencies := r.Group("/emergencies")
	{
		// Raising an emergency must work without an account; the one-tap
		// button cannot stop for a login screen.
		emergencies.POST("", middleware.OptionalAuthMiddleware(), h.Raise)

		emergencies.GET("", middleware.AuthMiddleware(), h.List)
		emergencies.GET("/:emergencyId", middleware.AuthMiddleware(), h.Get)
		emergencies.PUT("/:emergencyId/accept", middleware.AuthMiddleware(), h.Accept)
		emergencies.PUT("/:emergencyId/complete", middleware.AuthMiddleware(), h.Complete)
	}
}

func (h *EmergencyHandler) Raise(c *gin.Context) {
	var req dto.RaiseEmergencyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	emergency, err := h.emergencyService.Raise(c.Request.Context(), h.GetOptionalUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, emergency)
}

func (h *EmergencyHandler) List(c *gin.Context) {
	status := models.EmergencyStatus(c.Query("status"))

	emergencies, err := h.emergencyService.List(c.Request.Context(), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emergencies": emergencies})
}

func (h *EmergencyHandler) Get(c *gin.Context) {
	emergency, err := h.emergencyService.Get(c.Request.Context(), c.Param("emergencyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, emergency)
}

func (h *EmergencyHandler) Accept(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.actionService.AcceptEmergency(c.Request.Context(), userID, c.Param("emergencyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "in_progress"})
}

func (h *EmergencyHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.actionService.CompleteEmergency(c.Request.Context(), userID, c.Param("emergencyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
