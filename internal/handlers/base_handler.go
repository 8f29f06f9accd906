package handlers

import (
	"reliefhub_backend/internal/logger"
	"reliefhub_backend/internal/validator"
	"reliefhub_backend/pkg/apperrors"
	"reliefhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries the pieces every handler needs: binding, validation,
// identity extraction, and error rendering.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the body and runs struct validation. On failure
// it writes the error response and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
			return false
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return false
	}

	return true
}

// GetAndAuthorizeUserID pulls the authenticated user ID out of the context.
// Writes 401 and returns false if the auth middleware did not run.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(contextkeys.UserID)
	if !exists {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}

	userID, ok := val.(string)
	if !ok || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}

	return userID, true
}

// GetOptionalUserID returns the caller's user ID, or "" for anonymous
// requests behind OptionalAuthMiddleware.
func (h *BaseHandler) GetOptionalUserID(c *gin.Context) string {
	if val, exists := c.Get(contextkeys.UserID); exists {
		if userID, ok := val.(string); ok {
			return userID
		}
	}
	return ""
}

// HandleServiceError renders a service-layer error.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}
