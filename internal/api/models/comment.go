package models

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FilmID    int64     `json:"film_id" gorm:"not null;index"`
	AuthorID  *string   `json:"author_id,omitempty" gorm:"type:uuid;index"` // nil for anonymous or deleted authors
	Text      string    `json:"text" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL;"`
	Film   Film  `json:"film,omitempty" gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
