package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"print_notifier/internal/models"
	"print_notifier/internal/repository"
)

type HistoryService struct {
	historyRepo repository.HistoryRepo
}

func NewHistoryService(historyRepo repository.HistoryRepo) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventCode trims spaces and lowercases the event code filter.
func normalizeEventCode(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeEventCode(f.Code), nil
}

func (s *HistoryService) List(ctx context.Context, f LogFilter) ([]models.NotificationRecord, error) {
	from, to, code, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.historyRepo.List(ctx, from, to, code)
}
