package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "storefront-backend/common/errors"
	"storefront-backend/services"
)

// respondError translates an error into its HTTP response through the shared
// error taxonomy. Service errors keep their status and message; anything else
// surfaces as a generic 500. The error is also attached to the context so the
// error middleware sees it.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		var svcErr *services.ServiceError
		if errors.As(err, &svcErr) {
			appErr = apperrors.New(svcErr.StatusCode, svcErr.Message, nil)
		} else {
			appErr = apperrors.ErrInternalServer
		}
	}

	_ = c.Error(appErr)
	c.JSON(appErr.Code, appErr)
}
