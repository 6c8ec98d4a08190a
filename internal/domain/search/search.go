package search

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

const (
	// MaxPerType caps the results returned for each entity.
	MaxPerType = 5
	// MaxRecent caps the recent searches kept per user.
	MaxRecent = 10
	// SubtitleLength is how much of a notification message is shown.
	SubtitleLength = 60
)

var ErrEmptyQuery = errors.New("query is required")

type ResultType string

const (
	TypeEmployee     ResultType = "employee"
	TypeLeave        ResultType = "leave"
	TypeNotification ResultType = "notification"
)

type Result struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	Type     ResultType `json:"type"`
	URL      string     `json:"url"`
	Date     *time.Time `json:"date,omitempty"`

	score float64
}

type Response struct {
	Query      string   `json:"query"`
	Results    []Result `json:"results"`
	Suggestion *string  `json:"suggestion,omitempty"`
}

// Requester is who is searching. Only admins see employees.
type Requester struct {
	UserID  string
	IsAdmin bool
}

type SaveRecentRequest struct {
	Query string `json:"query" validate:"required,max=200"`
}

func (r *SaveRecentRequest) Validate() error {
	return validator.StructErrors(r).Err()
}

// RecentStore persists each user's recent searches, most recent first.
type RecentStore interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID string, query string) ([]string, error)
	Clear(ctx context.Context, userID string) error
}

type Service interface {
	Search(ctx context.Context, requester Requester, query string) (Response, error)
	RecentSearches(ctx context.Context, userID string) ([]string, error)
	SaveSearch(ctx context.Context, userID string, query string) ([]string, error)
	ClearRecentSearches(ctx context.Context, userID string) error
}
