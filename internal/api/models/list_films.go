package models

import "time"

// explicit join model for list membership. The per-user "film in at most one
// list" rule is NOT a constraint here: it spans every list the user owns and
// is maintained by the list repository inside a transaction.
type ListFilm struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FilmListID int64     `json:"film_list_id" gorm:"index;not null;uniqueIndex:idx_list_films_edge"`
	FilmID     int64     `json:"film_id" gorm:"index;not null;uniqueIndex:idx_list_films_edge"`
	AddedAt    time.Time `json:"added_at" gorm:"autoCreateTime"`
}

func (ListFilm) TableName() string {
	return "list_films"
}
