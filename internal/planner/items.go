package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/starford/weeks/internal/apperr"
	"github.com/starford/weeks/internal/models"
)

// MaxTextLength bounds item text in characters.
const MaxTextLength = 4096

func validateText(kind models.Kind, text string) error {
	if kind != models.KindGoal && kind != models.KindNote {
		return fmt.Errorf("planner: kind %d has no text: %w", kind, apperr.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("planner: empty text: %w", apperr.ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return fmt.Errorf("planner: text longer than %d: %w", MaxTextLength, apperr.ErrInvalidInput)
	}
	return nil
}

// GetItem returns a single item.
func (s *Service) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return s.store.GetItem(ctx, id)
}

// UpdateText replaces the title of a goal or the body of a note.
func (s *Service) UpdateText(ctx context.Context, id int64, text string) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateText(it.Kind, text); err != nil {
		return nil, err
	}
	it.SetText(text)
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ActionUpdated, id)
	return it, nil
}

// ToggleItem flips an item between done and undone.
func (s *Service) ToggleItem(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Toggle()
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ActionUpdated, id)
	return it, nil
}

// DeleteItem removes an item. The remaining keys stay valid, so no repair is needed.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.publish(ActionDeleted, id)
	return nil
}

// Backup copies the database into dir and returns the file path.
func (s *Service) Backup(ctx context.Context, dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.store.Backup(ctx, dir)
	if err != nil {
		return "", err
	}
	s.log.Info("database backup written", slog.String("path", path))
	return path, nil
}
