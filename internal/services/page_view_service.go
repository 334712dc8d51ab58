package services

import (
	"fmt"

	"streetbite_backend/internal/metrics"
	"streetbite_backend/internal/repositories"
)

// PageViewService counts landing page visits per calendar day.
// Concurrent visits are folded into a single upsert; an occasional lost update is acceptable.
type PageViewService interface {
	RecordVisit() error
	TodayCount() (int64, error)
}

type pageViewService struct {
	repo     repositories.PageViewRepository
	calendar Calendar
	metrics  *metrics.Metrics
}

// NewPageViewService creates a new instance of PageViewService.
func NewPageViewService(repo repositories.PageViewRepository, calendar Calendar, m *metrics.Metrics) PageViewService {
	return &pageViewService{repo: repo, calendar: calendar, metrics: m}
}

func (s *pageViewService) RecordVisit() error {
	if err := s.repo.Increment(s.calendar.DayKey(s.calendar.Now())); err != nil {
		return fmt.Errorf("failed to record page view: %w", err)
	}
	s.metrics.PageViewed()
	return nil
}

func (s *pageViewService) TodayCount() (int64, error) {
	n, err := s.repo.CountForDay(s.calendar.DayKey(s.calendar.Now()))
	if err != nil {
		return 0, fmt.Errorf("failed to read page views: %w", err)
	}
	return n, nil
}
