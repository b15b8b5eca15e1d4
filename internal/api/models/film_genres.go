package models

// explicit join model so migrations own the table shape (has its own id)
type FilmGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	FilmID  int64 `json:"film_id" gorm:"index;not null"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
}

func (FilmGenre) TableName() string {
	return "film_genres"
}
