package bulk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_DeleteFailureKeepsSelection(t *testing.T) {
	s := NewSelection("a", "b", "c")

	var got []string
	_, err := s.Delete(context.Background(), "employees", func(ctx context.Context, ids []string) (int64, error) {
		got = ids
		return 0, errors.New("connection reset")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 3, s.Len())
}

func TestSelection_DeleteSuccessClears(t *testing.T) {
	s := NewSelection("a", "b")

	msg, err := s.Delete(context.Background(), "leave requests", func(ctx context.Context, ids []string) (int64, error) {
		return int64(len(ids)), nil
	})

	require.NoError(t, err)
	assert.Equal(t, "2 leave requests deleted successfully", msg)
	assert.Zero(t, s.Len())
}

func TestSelection_EmptyDelete(t *testing.T) {
	s := NewSelection()
	_, err := s.Delete(context.Background(), "employees", func(ctx context.Context, ids []string) (int64, error) {
		t.Fatal("callback must not run")
		return 0, nil
	})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestSelection_SelectAndToggle(t *testing.T) {
	s := NewSelection("a", "a", "b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Toggle("a")
	assert.Equal(t, []string{"b"}, s.IDs())
	s.Toggle("c")
	assert.Equal(t, []string{"b", "c"}, s.IDs())
}

func TestDeleteRequest_Validate(t *testing.T) {
	req := DeleteRequest{}
	assert.Error(t, req.Validate())

	req.IDs = []string{"not-a-uuid"}
	assert.Error(t, req.Validate())

	req.IDs = []string{"123e4567-e89b-12d3-a456-426614174000"}
	assert.NoError(t, req.Validate())
}
