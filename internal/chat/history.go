package chat

import "github.com/proxytool/proxytool/internal/models"

// DefaultHistoryLimit is how many prior chat turns feed the model when the
// caller does not say otherwise.
const DefaultHistoryLimit = 10

// Window selects the conversation context for a new exchange. Resume records
// are filtered out, the newest `limit` chat turns are kept, and the result is
// returned oldest-first so the model reads it chronologically. Turns are
// expected newest-first, as the store returns them. Empty input yields an
// empty window.
func Window(turns []models.ConversationTurn, limit int) []string {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	kept := make([]models.ConversationTurn, 0, limit)
	for _, t := range turns {
		if t.IsResumeRecord() || t.Message == "" {
			continue
		}
		kept = append(kept, t)
		if len(kept) == limit {
			break
		}
	}

	out := make([]string, 0, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		out = append(out, kept[i].Message)
	}
	return out
}
