package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/proxytool/proxytool/internal/extract"
	"github.com/proxytool/proxytool/internal/services"
	"github.com/proxytool/proxytool/internal/utils"
)

type ResumeHandler struct {
	svc services.ResumeService
}

func NewResumeHandler(svc services.ResumeService) *ResumeHandler {
	return &ResumeHandler{svc: svc}
}

func (h *ResumeHandler) Upload(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResumeHandler.Upload", "missing multipart field 'file'", err))
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(fh.Filename)
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, "ResumeHandler.Upload", "failed to open upload", err))
		return
	}
	defer file.Close()

	res, err := h.svc.Upload(c.Request.Context(), email, fh.Filename, contentType, fh.Size, file)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ResumeHandler) Details(c *gin.Context) {
	email, ok := requireEmail(c)
	if !ok {
		return
	}

	rows, userID, err := h.svc.Details(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":        userID,
		"resume_details": rows,
	})
}

// contentTypeFromExt covers clients that send uploads without a part
// content type.
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extract.MimePDF
	case ".docx":
		return extract.MimeDocx
	case ".txt":
		return extract.MimePlain
	default:
		return ""
	}
}
