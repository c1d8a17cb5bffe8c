package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/proxytool/proxytool/internal/models"
)

// turnsNewestFirst builds n chat turns, message "msg-0" being the newest,
// with a resume record interleaved after every fourth turn.
func mixedTurns(n int) []models.ConversationTurn {
	now := time.Now().UTC()
	resume := "extracted resume text"

	var out []models.ConversationTurn
	for i := 0; i < n; i++ {
		out = append(out, models.ConversationTurn{
			ID:        fmt.Sprintf("t-%d", i),
			Role:      models.RoleUser,
			Message:   fmt.Sprintf("msg-%d", i),
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
		if i%4 == 3 {
			out = append(out, models.ConversationTurn{
				ID:            fmt.Sprintf("r-%d", i),
				Role:          models.RoleUser,
				Message:       "Resume uploaded: cv.pdf",
				ResumeDetails: &resume,
				CreatedAt:     now.Add(-time.Duration(i) * time.Minute),
			})
		}
	}
	return out
}

func TestWindow_FiltersResumeRecordsAndLimits(t *testing.T) {
	turns := mixedTurns(15) // 15 chat turns + 3 resume records

	got := Window(turns, 10)

	if len(got) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(got))
	}
	// oldest-first: the 10 newest chat turns are msg-9 .. msg-0
	if got[0] != "msg-9" {
		t.Errorf("first message = %q, want msg-9", got[0])
	}
	if got[9] != "msg-0" {
		t.Errorf("last message = %q, want msg-0", got[9])
	}
	for _, m := range got {
		if m == "Resume uploaded: cv.pdf" {
			t.Errorf("resume record leaked into window")
		}
	}
}

func TestWindow_FewerTurnsThanLimit(t *testing.T) {
	turns := mixedTurns(3)
	got := Window(turns, 10)

	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	if got[0] != "msg-2" || got[2] != "msg-0" {
		t.Errorf("unexpected order: %v", got)
	}
}

func TestWindow_DefaultLimit(t *testing.T) {
	turns := mixedTurns(20)
	got := Window(turns, 0)
	if len(got) != DefaultHistoryLimit {
		t.Fatalf("expected %d messages, got %d", DefaultHistoryLimit, len(got))
	}
}

func TestWindow_EmptyInput(t *testing.T) {
	if got := Window(nil, 10); len(got) != 0 {
		t.Fatalf("expected empty window, got %v", got)
	}
}

func TestWindow_SkipsEmptyMessages(t *testing.T) {
	turns := []models.ConversationTurn{
		{ID: "a", Message: ""},
		{ID: "b", Message: "kept"},
	}
	got := Window(turns, 10)
	if len(got) != 1 || got[0] != "kept" {
		t.Fatalf("unexpected window: %v", got)
	}
}
