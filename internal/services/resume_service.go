package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/proxytool/proxytool/internal/cache"
	"github.com/proxytool/proxytool/internal/extract"
	"github.com/proxytool/proxytool/internal/models"
	pgrepo "github.com/proxytool/proxytool/internal/repositories/postgres"
	"github.com/proxytool/proxytool/internal/storage"
	"github.com/proxytool/proxytool/internal/utils"
)

const maxResumeSize = 10 << 20 // 10MB

var allowedResumeTypes = map[string]bool{
	extract.MimePDF:   true,
	extract.MimeDocx:  true,
	extract.MimePlain: true,
}

func resumeCacheKey(userID string) string { return "resume:" + userID }

type ResumeUploadResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	FileSize    int64  `json:"file_size"`
	TextLength  int    `json:"text_length"`
	TurnID      string `json:"turn_id"`
	UserID      string `json:"user_id"`
	StoredPath  string `json:"stored_path,omitempty"`
}

type ResumeRecord struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	ResumeDetails string    `json:"resume_details"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
}

type ResumeService interface {
	Upload(ctx context.Context, email, filename, contentType string, size int64, r io.Reader) (*ResumeUploadResult, error)
	// Details returns all resume records for the user, newest first, along
	// with the user's id.
	Details(ctx context.Context, email string) ([]ResumeRecord, string, error)
}

type resumeService struct {
	users    pgrepo.UserRepository
	turns    pgrepo.TurnRepository
	uploader storage.Uploader
	cache    cache.Cache
	log      *logrus.Logger
}

// NewResumeService builds the resume ingestion service. uploader and c may
// be nil; archival and caching are then skipped.
func NewResumeService(users pgrepo.UserRepository, turns pgrepo.TurnRepository, uploader storage.Uploader, c cache.Cache, log *logrus.Logger) ResumeService {
	return &resumeService{users: users, turns: turns, uploader: uploader, cache: c, log: log}
}

func (s *resumeService) Upload(ctx context.Context, email, filename, contentType string, size int64, r io.Reader) (*ResumeUploadResult, error) {
	const op = "ResumeService.Upload"

	if filename == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "filename is required", nil)
	}
	if !allowedResumeTypes[contentType] {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unsupported file type: "+contentType+" (allowed: PDF, DOCX, TXT)", nil)
	}
	if size <= 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}
	if size > maxResumeSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil)
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "email address '"+email+"' not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxResumeSize+1))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read upload", err)
	}
	if len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}
	if len(data) > maxResumeSize {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil)
	}

	text, err := extract.Text(contentType, data)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			return nil, utils.E(utils.CodeUnprocessable, op, "no readable text found in document", err)
		}
		return nil, utils.E(utils.CodeUnprocessable, op, "failed to extract text from document", err)
	}

	// archive the original bytes; the extracted text in the database is the
	// source of truth, so a storage failure does not fail the upload
	storedPath := ""
	if s.uploader != nil {
		objectName := "resumes/" + user.ID + "/" + uuid.NewString() + filepath.Ext(filename)
		storedPath, err = s.uploader.Upload(ctx, objectName, contentType, bytes.NewReader(data))
		if err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("resume archival failed, continuing")
			storedPath = ""
		}
	}

	turn := &models.ConversationTurn{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Role:          models.RoleUser,
		Message:       "Resume uploaded: " + filename,
		ResumeDetails: &text,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.turns.Insert(ctx, turn); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save resume", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, resumeCacheKey(user.ID)); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to invalidate resume cache")
		}
	}

	return &ResumeUploadResult{
		Filename:    filename,
		ContentType: contentType,
		FileSize:    int64(len(data)),
		TextLength:  len(text),
		TurnID:      turn.ID,
		UserID:      user.ID,
		StoredPath:  storedPath,
	}, nil
}

func (s *resumeService) Details(ctx context.Context, email string) ([]ResumeRecord, string, error) {
	const op = "ResumeService.Details"

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, "", utils.E(utils.CodeNotFound, op, "email address '"+email+"' not found", err)
		}
		return nil, "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	rows, err := s.turns.ListResumes(ctx, user.ID)
	if err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to list resume records", err)
	}

	out := make([]ResumeRecord, 0, len(rows))
	for _, row := range rows {
		details := ""
		if row.ResumeDetails != nil {
			details = *row.ResumeDetails
		}
		out = append(out, ResumeRecord{
			ID:            row.ID,
			Message:       row.Message,
			ResumeDetails: details,
			Role:          row.Role,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, user.ID, nil
}
