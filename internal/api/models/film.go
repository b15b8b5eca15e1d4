package models

import "time"

type Film struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"not null;size:200"`
	Synopsis    string     `json:"synopsis" gorm:"type:text"`
	PosterURL   *string    `json:"poster_url,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	FranchiseID *int64     `json:"franchise_id,omitempty" gorm:"index"`
	CreatedAt   *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// association
	Franchise *Franchise `json:"franchise,omitempty" gorm:"foreignKey:FranchiseID;constraint:OnDelete:SET NULL;"`
	Genres    []Genre    `json:"genres,omitempty" gorm:"many2many:film_genres;constraint:OnDelete:CASCADE;"`
}

func (Film) TableName() string {
	return "films"
}
