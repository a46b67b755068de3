package models

import "strings"

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

type User struct {
	BaseModel
	Username     string   `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string   `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"type:text;not null"`
	FirstName    string   `json:"firstName" gorm:"type:varchar(100)"`
	LastName     string   `json:"lastName" gorm:"type:varchar(100)"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Posts        []Post   `json:"-" gorm:"foreignKey:AuthorID"`
}

// FullName falls back to the username when the profile has no name set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
