package handlers

import (
	"net/http"

	"reliefhub_backend/internal/middleware"
	"reliefhub_backend/internal/models"
	"reliefhub_backend/internal/services"
	"reliefhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProgramHandler struct {
	*BaseHandler
	programService services.ProgramService
	actionService  services.ActionService
}

func NewProgramHandler(base *BaseHandler, programService services.ProgramService, actionService services.ActionService) *ProgramHandler {
	return &ProgramHandler{
		BaseHandler:    base,
		programService: programService,
		actionService:  actionService,
	}
}

func (h *ProgramHandler) RegisterRoutes(r *gin.RouterGroup) {
	programs := r.Group("/programs")
	programs.Use(middleware.AuthMiddleware())
	{
		programs.GET("", h.List)
		programs.GET("/:programId", h.Get)
		programs.GET("/:programId/volunteers", h.ListMembers)
		programs.POST("", middleware.RoleMiddleware(models.UserRoleNGO), h.Create)
		programs.PUT("/:programId/status", h.UpdateStatus)
		programs.POST("/:programId/join", middleware.RoleMiddleware(models.UserRoleVolunteer), h.Join)
	}
}

func (h *ProgramHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProgramRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	program, err := h.programService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, program)
}

func (h *ProgramHandler) List(c *gin.Context) {
	status := models.ProgramStatus(c.Query("status"))

	programs, err := h.programService.List(c.Request.Context(), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"programs": programs})
}

func (h *ProgramHandler) Get(c *gin.Context) {
	program, err := h.programService.Get(c.Request.Context(), c.Param("programId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) ListMembers(c *gin.Context) {
	members, err := h.programService.ListMembers(c.Request.Context(), c.Param("programId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"volunteers": members})
}

func (h *ProgramHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgramStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.programService.UpdateStatus(c.Request.Context(), userID, c.Param("programId"), models.ProgramStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *ProgramHandler) Join(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.actionService.JoinProgram(c.Request.Context(), userID, c.Param("programId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"joined": true})
}
