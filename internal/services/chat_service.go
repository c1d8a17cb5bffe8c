package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/proxytool/proxytool/internal/cache"
	"github.com/proxytool/proxytool/internal/chat"
	"github.com/proxytool/proxytool/internal/models"
	"github.com/proxytool/proxytool/internal/providers/llm"
	"github.com/proxytool/proxytool/internal/providers/stt"
	pgrepo "github.com/proxytool/proxytool/internal/repositories/postgres"
	"github.com/proxytool/proxytool/internal/utils"
)

const (
	DefaultModel       = "openai/gpt-oss-120b"
	DefaultTemperature = 0.6
	DefaultTopP        = 0.95

	resumeCacheTTL = 10 * time.Minute
)

// ChatRequest is the ephemeral per-call input; it is never persisted.
// At least one of Text/Audio must be set. Audio nil means no audio was
// sent; a non-nil empty slice means an empty file was sent and is left
// for the transcription provider to reject.
type ChatRequest struct {
	Email       string
	Text        string
	Audio       []byte
	AudioName   string
	Model       string
	Temperature float64
	TopP        float64
}

type ChatResult struct {
	Explanation string `json:"explanation"`
	Code        string `json:"code"`
	UserID      string `json:"user_id"`
}

type ChatService interface {
	Invoke(ctx context.Context, req ChatRequest) (*ChatResult, error)
}

type chatService struct {
	users pgrepo.UserRepository
	turns pgrepo.TurnRepository
	llm   llm.Provider
	stt   stt.Provider
	cache cache.Cache
	log   *logrus.Logger
}

// NewChatService wires the conversation pipeline. sttProvider may be nil when
// audio input is not supported; c may be nil to disable resume caching.
func NewChatService(users pgrepo.UserRepository, turns pgrepo.TurnRepository, llmProvider llm.Provider, sttProvider stt.Provider, c cache.Cache, log *logrus.Logger) ChatService {
	return &chatService{users: users, turns: turns, llm: llmProvider, stt: sttProvider, cache: c, log: log}
}

// Invoke runs one chat exchange: resolve the user, load their resume,
// transcribe audio if any, merge the inputs, window the history, prompt the
// model, and recover a structured reply from whatever text comes back.
// Input validation and user resolution fail before any provider call;
// history fetch and turn persistence are best-effort.
func (s *chatService) Invoke(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	const op = "ChatService.Invoke"

	if strings.TrimSpace(req.Text) == "" && req.Audio == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "either text or audio input must be provided", nil)
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "email address '"+req.Email+"' not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	resumeText, err := s.resumeText(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	transcript := ""
	if req.Audio != nil {
		transcript, err = s.transcribe(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	input := strings.TrimSpace(req.Text)
	if t := strings.TrimSpace(transcript); t != "" {
		if input != "" {
			input = input + "\n\n" + t
		} else {
			input = t
		}
	}
	if input == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "no usable input after processing", nil)
	}

	var history []string
	if rows, err := s.turns.RecentChats(ctx, user.ID, chat.DefaultHistoryLimit); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to fetch conversation history, continuing without it")
	} else {
		history = chat.Window(rows, chat.DefaultHistoryLimit)
	}

	opts := llm.Options{Model: req.Model, Temperature: req.Temperature, TopP: req.TopP}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	prompt := chat.PersonaPrompt(resumeText) + "\n\n" + chat.TurnPrompt(input, history)
	completion, err := s.llm.Complete(ctx, prompt, opts)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "model completion failed", err)
	}

	var reply chat.StructuredReply
	if strings.TrimSpace(completion) == "" {
		reply = chat.StructuredReply{Explanation: "No response received from the model.", Code: ""}
	} else {
		reply = chat.Extract(completion)
	}

	s.persistTurns(ctx, user.ID, input, reply, opts)

	return &ChatResult{Explanation: reply.Explanation, Code: reply.Code, UserID: user.ID}, nil
}

// resumeText loads the latest resume text for the user, read through the
// cache when one is configured. A user without a resume gets the placeholder;
// cache failures are treated as misses.
func (s *chatService) resumeText(ctx context.Context, userID string) (string, error) {
	const op = "ChatService.Invoke"

	key := resumeCacheKey(userID)
	if s.cache != nil {
		v, hit, err := s.cache.GetString(ctx, key)
		if err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("resume cache read failed")
		} else if hit {
			return v, nil
		}
	}

	row, err := s.turns.LatestResume(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return chat.NoResumeDetails, nil
		}
		return "", utils.E(utils.CodeInternal, op, "failed to fetch resume details", err)
	}

	text := ""
	if row.ResumeDetails != nil {
		text = *row.ResumeDetails
	}
	if strings.TrimSpace(text) == "" {
		return chat.NoResumeDetails, nil
	}

	if s.cache != nil {
		if err := s.cache.SetString(ctx, key, text, resumeCacheTTL); err != nil {
			s.log.WithError(err).WithField("user_id", userID).Warn("resume cache write failed")
		}
	}
	return text, nil
}

// transcribe spools the audio bytes to a temp file, runs the transcription
// provider against it, and removes the file on every exit path.
func (s *chatService) transcribe(ctx context.Context, req ChatRequest) (string, error) {
	const op = "ChatService.Invoke"

	if s.stt == nil {
		return "", utils.E(utils.CodeInternal, op, "transcription provider is not configured", nil)
	}

	suffix := filepath.Ext(req.AudioName)
	if suffix == "" {
		suffix = ".wav"
	}
	f, err := os.CreateTemp("", "chat-audio-*"+suffix)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to create temporary audio file", err)
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil {
			s.log.WithError(err).WithField("path", path).Warn("failed to remove temporary audio file")
		}
	}()

	if _, err := f.Write(req.Audio); err != nil {
		_ = f.Close()
		return "", utils.E(utils.CodeInternal, op, "failed to write temporary audio file", err)
	}
	if err := f.Close(); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to write temporary audio file", err)
	}

	text, err := s.stt.Transcribe(ctx, path)
	if err != nil {
		if errors.Is(err, stt.ErrEmptyAudio) {
			return "", utils.E(utils.CodeUnprocessable, op, "audio file is empty", err)
		}
		return "", utils.E(utils.CodeUnprocessable, op, "failed to transcribe audio", err)
	}
	return text, nil
}

// persistTurns appends the user/assistant pair for this exchange. Saving is
// best-effort: the reply has already been produced and is returned to the
// caller even when the write fails.
func (s *chatService) persistTurns(ctx context.Context, userID, input string, reply chat.StructuredReply, opts llm.Options) {
	md, _ := json.Marshal(map[string]any{
		"model":       opts.Model,
		"temperature": opts.Temperature,
		"top_p":       opts.TopP,
	})

	now := time.Now().UTC()
	userTurn := &models.ConversationTurn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      models.RoleUser,
		Message:   input,
		CreatedAt: now,
	}
	assistantTurn := &models.ConversationTurn{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      models.RoleAssistant,
		Message:   reply.Message(),
		Metadata:  datatypes.JSON(md),
		CreatedAt: now,
	}

	if err := s.turns.AppendPair(ctx, userTurn, assistantTurn); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("failed to save conversation turns, continuing")
	}
}
