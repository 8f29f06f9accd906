package handlers

import (
	"net/http"

	"reliefhub_backend/internal/middleware"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	*BaseHandler
	resourceService services.ResourceService
	actionService   services.ActionService
}

func NewResourceHandler(base *BaseHandler, resourceService services.ResourceService, actionService services.ActionService) *ResourceHandler {
	return &ResourceHandler{
		BaseHandler:     base,
		resourceService: resourceService,
		actionService:   actionService,
	}
}

func (h *ResourceHandler) RegisterRoutes(r *gin.RouterGroup) {
	programs := r.Group("/programs")
	programs.Use(middleware.AuthMiddleware())
	{
		programs.POST("/:programId/resources", h.Create)
		programs.GET("/:programId/resources", h.ListByProgram)
	}

	resources := r.Group("/resources")
	resources.Use(middleware.AuthMiddleware())
	{
		resources.PUT("/:requestId/accept", h.Accept)
		resources.PUT("/:requestId/complete", h.Complete)
	}
}

func (h *ResourceHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateResourceRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.resourceService.Create(c.Request.Context(), userID, c.Param("programId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *ResourceHandler) ListByProgram(c *gin.Context) {
	requests, err := h.resourceService.ListByProgram(c.Request.Context(), c.Param("programId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource_requests": requests})
}

func (h *ResourceHandler) Accept(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.actionService.AcceptResourceRequest(c.Request.Context(), userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "providing"})
}

func (h *ResourceHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.actionService.CompleteResourceRequest(c.Request.Context(), userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
