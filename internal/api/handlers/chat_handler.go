package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/proxytool/proxytool/internal/services"
	"github.com/proxytool/proxytool/internal/utils"
)

type ChatHandler struct {
	svc services.ChatService
}

func NewChatHandler(svc services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Invoke accepts a multipart form: email, plus text and/or audio, with
// optional model/temperature/top_p overrides.
func (h *ChatHandler) Invoke(c *gin.Context) {
	const op = "ChatHandler.Invoke"

	email, ok := requireEmail(c)
	if !ok {
		return
	}

	req := services.ChatRequest{
		Email:       email,
		Text:        c.PostForm("text"),
		Model:       c.PostForm("model"),
		Temperature: formFloat(c, "temperature", services.DefaultTemperature),
		TopP:        formFloat(c, "top_p", services.DefaultTopP),
	}

	fh, err := c.FormFile("audio")
	switch {
	case err == nil:
		file, err := fh.Open()
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to open audio upload", err))
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to read audio upload", err))
			return
		}
		if data == nil {
			data = []byte{}
		}
		req.Audio = data
		req.AudioName = fh.Filename
	case errors.Is(err, http.ErrMissingFile):
		// text-only request
	default:
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid multipart form", err))
		return
	}

	res, err := h.svc.Invoke(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func formFloat(c *gin.Context, field string, fallback float64) float64 {
	s := c.PostForm(field)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
