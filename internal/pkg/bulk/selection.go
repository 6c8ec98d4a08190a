package bulk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

var ErrEmptySelection = errors.New("no items selected")

// DeleteRequest is the body of every bulk delete endpoint.
type DeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

func (r *DeleteRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

// DeleteFunc deletes the given ids and reports how many rows went away.
type DeleteFunc func(ctx context.Context, ids []string) (int64, error)

// Selection is a set of selected ids in selection order.
type Selection struct {
	mu  sync.Mutex
	ids []string
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{}
	for _, id := range ids {
		s.Select(id)
	}
	return s
}

// Select adds id unless it is already selected.
func (s *Selection) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.ids {
		if existing == id {
			return
		}
	}
	s.ids = append(s.ids, id)
}

// Toggle selects id, or deselects it when already selected.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// IDs returns a copy of the selected ids.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
}

// Delete passes every selected id to fn. The selection is cleared only when
// fn succeeds.
func (s *Selection) Delete(ctx context.Context, noun string, fn DeleteFunc) (string, error) {
	ids := s.IDs()
	if len(ids) == 0 {
		return "", ErrEmptySelection
	}

	deleted, err := fn(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("failed to delete %s: %w", noun, err)
	}

	s.Clear()
	return fmt.Sprintf("%d %s deleted successfully", deleted, noun), nil
}
