package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proxytool/proxytool/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

// requireEmail pulls the email out of the query string or the form and
// rejects the request when it is missing.
func requireEmail(c *gin.Context) (string, bool) {
	email := c.Query("email")
	if email == "" {
		email = c.PostForm("email")
	}
	if email == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "Auth", "email is required", nil))
		return "", false
	}
	return email, true
}
