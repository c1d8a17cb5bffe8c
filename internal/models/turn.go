package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is append-only: chat turns and resume records share this
// table, distinguished by ResumeDetails. A non-nil ResumeDetails marks a
// resume-ingestion record whose Message is only a short upload note.
type ConversationTurn struct {
	ID            string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID        string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Role          string         `gorm:"column:role;type:text" json:"role"` // "user" | "assistant"
	Message       string         `gorm:"column:message;type:text" json:"message"`
	ResumeDetails *string        `gorm:"column:resume_details;type:text" json:"resume_details,omitempty"`
	Metadata      datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (ConversationTurn) TableName() string { return "conversation_turns" }

// IsResumeRecord reports whether this turn stores extracted resume text
// rather than a chat message.
func (t *ConversationTurn) IsResumeRecord() bool { return t.ResumeDetails != nil }
