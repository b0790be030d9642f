package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"print_notifier/internal/logger"
	"print_notifier/internal/models"
	"print_notifier/internal/repository"
)

var (
	ErrInvalidRecipient  = errors.New("token and printer id are required")
	ErrRecipientNotFound = errors.New("recipient not found")
)

// RecipientService owns token registration. It also serves as the arbiter's
// RecipientSource.
type RecipientService struct {
	log  *logger.Logger
	repo repository.RecipientRepo
	now  func() time.Time

	// mu serializes read-modify-write registration.
	mu sync.Mutex
}

func NewRecipientService(log *logger.Logger, repo repository.RecipientRepo) *RecipientService {
	return &RecipientService{log: log, repo: repo, now: time.Now}
}

// UpdateToken registers or refreshes a device for a printer:
// a stored OldToken is replaced by NewToken; a stored NewToken is kept;
// otherwise a new recipient is appended. A non-empty display name or
// language overwrites the stored value.
func (s *RecipientService) UpdateToken(ctx context.Context, u TokenUpdate) (models.Recipient, error) {
	u.OldToken = strings.TrimSpace(u.OldToken)
	u.NewToken = strings.TrimSpace(u.NewToken)
	u.PrinterID = strings.TrimSpace(u.PrinterID)
	if u.NewToken == "" || u.PrinterID == "" {
		return models.Recipient{}, ErrInvalidRecipient
	}
	if u.OldToken == "" {
		u.OldToken = u.NewToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.List(ctx)
	if err != nil {
		return models.Recipient{}, fmt.Errorf("list recipients: %w", err)
	}

	now := s.now().UTC()
	found, ok := findRecipient(list, u.PrinterID, u.OldToken)
	if !ok {
		found, ok = findRecipient(list, u.PrinterID, u.NewToken)
	}
	if !ok {
		rec := models.Recipient{
			Token:       u.NewToken,
			PrinterID:   u.PrinterID,
			DeviceName:  u.DeviceName,
			DisplayName: u.DisplayName,
			Language:    u.Language,
			UpdatedAt:   now,
		}
		if err := s.repo.Save(ctx, rec); err != nil {
			return models.Recipient{}, err
		}
		s.log.Infow("recipient_registered", "printer_id", rec.PrinterID, "device_name", rec.DeviceName)
		return rec, nil
	}

	rec := found
	replaced := rec.Token == u.OldToken && u.OldToken != u.NewToken
	changed := replaced
	if replaced {
		rec.Token = u.NewToken
		rec.UpdatedAt = now
	}
	if u.DisplayName != "" && u.DisplayName != rec.DisplayName {
		rec.DisplayName = u.DisplayName
		changed = true
	}
	if u.Language != "" && u.Language != rec.Language {
		rec.Language = u.Language
		changed = true
	}
	if !changed {
		return rec, nil
	}

	if replaced {
		err = s.repo.Replace(ctx, u.OldToken, rec)
	} else {
		err = s.repo.Save(ctx, rec)
	}
	if err != nil {
		return models.Recipient{}, err
	}
	s.log.Infow("recipient_updated", "printer_id", rec.PrinterID, "token_replaced", replaced)
	return rec, nil
}

// ListRecipients returns a snapshot; callers may keep it during mutations.
func (s *RecipientService) ListRecipients(ctx context.Context) ([]models.Recipient, error) {
	return s.repo.List(ctx)
}

func (s *RecipientService) DeleteRecipient(ctx context.Context, token, printerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.repo.Delete(ctx, strings.TrimSpace(token), strings.TrimSpace(printerID))
	if err != nil {
		return err
	}
	if !ok {
		return ErrRecipientNotFound
	}
	s.log.Infow("recipient_deleted", "printer_id", printerID)
	return nil
}

func findRecipient(list []models.Recipient, printerID, token string) (models.Recipient, bool) {
	for _, r := range list {
		if r.PrinterID == printerID && r.Token == token {
			return r, true
		}
	}
	return models.Recipient{}, false
}
