package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proxytool/proxytool/internal/services"
	"github.com/proxytool/proxytool/internal/utils"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.SignUp", "invalid request body", err))
		return
	}

	u, err := h.svc.SignUp(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Get(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	u, err := h.svc.Get(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "UserHandler.Delete", "invalid request body", err))
		return
	}

	id, err := h.svc.Delete(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "User successfully deleted",
		"deleted_email":   req.Email,
		"deleted_user_id": id,
	})
}
