package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// PageViewRepository keeps one counter row per calendar day (YYYY-MM-DD).
type PageViewRepository interface {
	Increment(day string) error
	CountForDay(day string) (int64, error)
}

type pageViewRepository struct {
	db *sql.DB
}

// NewPageViewRepository creates a new instance of PageViewRepository.
func NewPageViewRepository(db *sql.DB) PageViewRepository {
	return &pageViewRepository{db: db}
}

// Increment inserts the day with count 1 or bumps the existing row in one statement.
func (r *pageViewRepository) Increment(day string) error {
	query := `INSERT INTO page_views (view_date, view_count)
	          VALUES ($1, 1)
	          ON CONFLICT (view_date) DO UPDATE SET view_count = page_views.view_count + 1`
	if _, err := r.db.Exec(query, day); err != nil {
		return wrapDBError("incrementing page views for "+day, err)
	}
	return nil
}

func (r *pageViewRepository) CountForDay(day string) (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT view_count FROM page_views WHERE view_date = $1`, day).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: counting page views for %s: %v", ErrDatabaseError, day, err)
	}
	return count, nil
}
