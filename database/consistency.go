package database

import (
	"log/slog"

	"gorm.io/gorm"
)

// CheckInvariants scans for rows that violate the application-maintained
// rules: a film sitting in more than one of a user's lists, or duplicate
// ratings for one (user, film) pair. Violations mean a bug elsewhere; they
// are reported, never silently repaired.
func CheckInvariants(db *gorm.DB, logger *slog.Logger) error {
	type listViolation struct {
		UserID string
		FilmID int64
		Lists  int64
	}
	var listViolations []listViolation
	err := db.Raw(`
		SELECT fl.user_id, lf.film_id, COUNT(*) AS lists
		FROM list_films lf
		JOIN film_lists fl ON fl.id = lf.film_list_id
		GROUP BY fl.user_id, lf.film_id
		HAVING COUNT(*) > 1`).Scan(&listViolations).Error
	if err != nil {
		return err
	}
	for _, v := range listViolations {
		logger.Error("film present in multiple lists of one user",
			"user_id", v.UserID, "film_id", v.FilmID, "lists", v.Lists)
	}

	type ratingViolation struct {
		UserID string
		FilmID int64
		Rows   int64
	}
	var ratingViolations []ratingViolation
	err = db.Raw(`
		SELECT user_id, film_id, COUNT(*) AS rows
		FROM ratings
		GROUP BY user_id, film_id
		HAVING COUNT(*) > 1`).Scan(&ratingViolations).Error
	if err != nil {
		return err
	}
	for _, v := range ratingViolations {
		logger.Error("duplicate ratings for one user and film",
			"user_id", v.UserID, "film_id", v.FilmID, "rows", v.Rows)
	}

	return nil
}
