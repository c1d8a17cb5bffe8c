package models

import "time"

type User struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`

	Turns []ConversationTurn `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string { return "users" }
