package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type JSONResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError writes the envelope for err. Store errors are logged here with
// their cause and answered with the generic message only.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	if appErr.Kind == KindStore {
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Errorf("%s: %v", appErr.Message, appErr.Err)
	}
	c.JSON(appErr.Status(), JSONResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// AbortWithError is RespondError for middlewares.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}
