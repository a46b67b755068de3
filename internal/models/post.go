package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a user-authored text entry. The publication time is the row's
// creation time and is never touched by edits. Deleting the author takes
// the post with it; deleting the group only clears the reference.
type Post struct {
	BaseModel
	Text     string     `json:"text" gorm:"type:text;not null"`
	AuthorID uuid.UUID  `json:"authorID" gorm:"type:uuid;not null;index"`
	GroupID  *uuid.UUID `json:"groupID,omitempty" gorm:"type:uuid;index"`

	Author User   `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Group  *Group `json:"group,omitempty" gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:SET NULL"`
}

func (p Post) Published() time.Time {
	return p.CreatedAt
}
