package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"streetbite_backend/internal/models"
	"streetbite_backend/internal/repositories"

	"github.com/rs/zerolog/log"
)

var (
	ErrShopClosed     = errors.New("shop is closed, please check back next time")
	ErrUnknownSetting = errors.New("unknown setting key")
)

// DefaultSettings are inserted on first start; existing values are never overwritten.
var DefaultSettings = map[string]string{
	models.SettingShopStatus:    models.ShopStatusClosed,
	models.SettingPhone:         "+91 98765 43210",
	models.SettingAddress:       "123 Spice Route Market, Foodie Lane, Downtown",
	models.SettingHoursWeekday:  "11:00 AM - 10:00 PM",
	models.SettingHoursSaturday: "11:00 AM - 11:30 PM",
	models.SettingHoursSunday:   "12:00 PM - 09:00 PM",
	models.SettingWhatsAppMsg:   "Hello! I would like to order from The Food Palace.",
	models.SettingUPIID:         "yourname@upi",
	models.SettingBannerURL:     "",
}

// SettingService reads settings fresh from storage on every call; there is no process cache.
type SettingService interface {
	GetAll() (map[string]string, error)
	GetShopSettings() (*models.ShopSettings, error)
	IsShopOpen() (bool, error)
	Update(values map[string]string) (map[string]string, error)
	SetShopOpen(open bool) error
	SeedDefaults() (int, error)
}

type settingService struct {
	settingRepo repositories.SettingRepository
	db          *sql.DB
}

// NewSettingService creates a new instance of SettingService.
func NewSettingService(repo repositories.SettingRepository, db *sql.DB) SettingService {
	return &settingService{settingRepo: repo, db: db}
}

func (s *settingService) GetAll() (map[string]string, error) {
	rows, err := s.settingRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *settingService) GetShopSettings() (*models.ShopSettings, error) {
	all, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	typed := models.ShopSettingsFromMap(all)
	return &typed, nil
}

// IsShopOpen is true only when shop_status is exactly "open". A missing row means closed.
func (s *settingService) IsShopOpen() (bool, error) {
	value, err := s.settingRepo.Get(models.SettingShopStatus)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read shop status: %w", err)
	}
	return value == models.ShopStatusOpen, nil
}

// Update validates every key before writing any of them, then upserts all in one transaction.
func (s *settingService) Update(values map[string]string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no settings given", ErrValidation)
	}
	clean := make(map[string]string, len(values))
	for key, value := range values {
		if !isKnownSetting(key) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		value = strings.TrimSpace(value)
		if key == models.SettingShopStatus {
			value = strings.ToLower(value)
			if value != models.ShopStatusOpen && value != models.ShopStatusClosed {
				return nil, fmt.Errorf("%w: shop_status must be %q or %q", ErrValidation, models.ShopStatusOpen, models.ShopStatusClosed)
			}
		}
		clean[key] = value
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for key, value := range clean {
		if err := s.settingRepo.Upsert(tx, key, value, now); err != nil {
			return nil, fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settings: %w", err)
	}
	return s.GetAll()
}

func (s *settingService) SetShopOpen(open bool) error {
	status := models.ShopStatusClosed
	if open {
		status = models.ShopStatusOpen
	}
	if err := s.settingRepo.Upsert(s.db, models.SettingShopStatus, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set shop status: %w", err)
	}
	log.Info().Str("shop_status", status).Msg("Shop status changed")
	return nil
}

// SeedDefaults inserts DefaultSettings that are not present yet and returns how many were added.
func (s *settingService) SeedDefaults() (int, error) {
	now := time.Now().UTC()
	added := 0
	for key, value := range DefaultSettings {
		inserted, err := s.settingRepo.InsertIfAbsent(s.db, key, value, now)
		if err != nil {
			return added, fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
		if inserted {
			added++
		}
	}
	return added, nil
}

func isKnownSetting(key string) bool {
	for _, k := range models.KnownSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
