package models

// Group is a slug-identified category posts may belong to. Groups are
// created through the admin API and never edited from the blog itself.
type Group struct {
	BaseModel
	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(200);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`
	Posts       []Post `json:"-" gorm:"foreignKey:GroupID"`
}
