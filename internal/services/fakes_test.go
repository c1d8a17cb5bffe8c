package services

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/proxytool/proxytool/internal/models"
	"github.com/proxytool/proxytool/internal/providers/llm"
	"github.com/proxytool/proxytool/internal/providers/stt"
	"github.com/proxytool/proxytool/internal/utils"
)

type fakeUserRepo struct {
	users map[string]*models.User // keyed by lowercase email

	findCalls   int
	insertCalls int
	deleteCalls int
	insertErr   error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	m := make(map[string]*models.User)
	for _, u := range users {
		m[strings.ToLower(u.Email)] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Insert(ctx context.Context, u *models.User) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.findCalls++
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.users[strings.ToLower(email)]
	return ok, nil
}

func (f *fakeUserRepo) DeleteByEmail(ctx context.Context, email string) error {
	f.deleteCalls++
	if _, ok := f.users[strings.ToLower(email)]; !ok {
		return utils.ErrNotFound
	}
	delete(f.users, strings.ToLower(email))
	return nil
}

func turnWithResume(text string) *models.ConversationTurn {
	return &models.ConversationTurn{
		ID:            "r1",
		Role:          models.RoleUser,
		Message:       "Resume uploaded: cv.pdf",
		ResumeDetails: &text,
	}
}

type appendedPair struct {
	user      *models.ConversationTurn
	assistant *models.ConversationTurn
}

type fakeTurnRepo struct {
	resume *models.ConversationTurn
	chats  []models.ConversationTurn

	resumeCalls int
	recentCalls int
	appended    []appendedPair
	inserted    []*models.ConversationTurn

	resumeErr error
	recentErr error
	appendErr error
	insertErr error
}

func (f *fakeTurnRepo) Insert(ctx context.Context, t *models.ConversationTurn) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, t)
	return nil
}

func (f *fakeTurnRepo) AppendPair(ctx context.Context, userTurn, assistantTurn *models.ConversationTurn) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, appendedPair{user: userTurn, assistant: assistantTurn})
	return nil
}

func (f *fakeTurnRepo) LatestResume(ctx context.Context, userID string) (*models.ConversationTurn, error) {
	f.resumeCalls++
	if f.resumeErr != nil {
		return nil, f.resumeErr
	}
	if f.resume == nil {
		return nil, utils.ErrNotFound
	}
	return f.resume, nil
}

func (f *fakeTurnRepo) ListResumes(ctx context.Context, userID string) ([]models.ConversationTurn, error) {
	if f.resume == nil {
		return nil, nil
	}
	return []models.ConversationTurn{*f.resume}, nil
}

func (f *fakeTurnRepo) RecentChats(ctx context.Context, userID string, limit int) ([]models.ConversationTurn, error) {
	f.recentCalls++
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if limit < len(f.chats) {
		return f.chats[:limit], nil
	}
	return f.chats, nil
}

type fakeLLM struct {
	response string
	err      error

	calls      int
	lastPrompt string
	lastOpts   llm.Options
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeLLM) Close() error { return nil }

type fakeSTT struct {
	text string
	err  error

	calls           int
	lastPath        string
	sawFileOnDisk   bool
	lastFileContent []byte
}

func (f *fakeSTT) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f.calls++
	f.lastPath = audioPath
	if data, err := os.ReadFile(audioPath); err == nil {
		f.sawFileOnDisk = true
		f.lastFileContent = data
		if len(data) == 0 {
			return "", stt.ErrEmptyAudio
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func (f *fakeSTT) Close() error { return nil }

type fakeCache struct {
	data map[string]string

	getCalls int
	setCalls int
	delCalls int
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string]string)} }

func (f *fakeCache) GetString(ctx context.Context, key string) (string, bool, error) {
	f.getCalls++
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeCache) SetString(ctx context.Context, key, val string, ttl time.Duration) error {
	f.setCalls++
	f.data[key] = val
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	f.delCalls++
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

type fakeUploader struct {
	err   error
	calls int
	last  string
}

func (f *fakeUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	f.calls++
	f.last = objectName
	if f.err != nil {
		return "", f.err
	}
	return "gs://test-bucket/" + objectName, nil
}
