package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"streetbite_backend/internal/models"
)

// SettingRepository stores the key/value settings table.
type SettingRepository interface {
	GetAll() ([]models.Setting, error)
	Get(key string) (string, error)
	Upsert(executor SQLExecutor, key, value string, updatedAt time.Time) error
	InsertIfAbsent(executor SQLExecutor, key, value string, updatedAt time.Time) (bool, error)
}

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sql.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetAll() ([]models.Setting, error) {
	rows, err := r.db.Query(`SELECT setting_key, setting_value, updated_at FROM settings ORDER BY setting_key`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying settings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	settings := []models.Setting{}
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning setting: %v", ErrDatabaseError, err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating settings: %v", ErrDatabaseError, err)
	}
	return settings, nil
}

func (r *settingRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT setting_value FROM settings WHERE setting_key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: getting setting %s: %v", ErrDatabaseError, key, err)
	}
	return value, nil
}

// Upsert writes the value, creating the row when missing. Last write wins.
func (r *settingRepository) Upsert(executor SQLExecutor, key, value string, updatedAt time.Time) error {
	query := `INSERT INTO settings (setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (setting_key) DO UPDATE
	          SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`
	if _, err := executor.Exec(query, key, value, updatedAt); err != nil {
		return wrapDBError("upserting setting "+key, err)
	}
	return nil
}

// InsertIfAbsent is used for seeding; existing values are never overwritten.
func (r *settingRepository) InsertIfAbsent(executor SQLExecutor, key, value string, updatedAt time.Time) (bool, error) {
	query := `INSERT INTO settings (setting_key, setting_value, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (setting_key) DO NOTHING`
	res, err := executor.Exec(query, key, value, updatedAt)
	if err != nil {
		return false, wrapDBError("seeding setting "+key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: seeding setting %s: %v", ErrDatabaseError, key, err)
	}
	return n > 0, nil
}
