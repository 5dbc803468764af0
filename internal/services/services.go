package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"choretracker/internal/models"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyExists = errors.New("task already exists")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")
)

type TaskService interface {
	// ListAllTasks returns every stored task across all owners.
	// Malformed rows are skipped, not returned as errors.
	ListAllTasks(ctx context.Context) ([]models.Task, error)

	// ListTasksByOwner returns the owner's tasks in insertion order.
	ListTasksByOwner(ctx context.Context, ownerID int64) ([]models.Task, error)

	// FindTasksByNamePrefix returns the owner's tasks whose names start
	// with the given prefix, for interactive name suggestion.
	FindTasksByNamePrefix(ctx context.Context, ownerID int64, prefix string) ([]models.Task, error)

	// AddTask inserts a task with last_completed set to today.
	//
	// It returns ErrTaskAlreadyExists when the owner already
	// tracks a task with the same name.
	AddTask(ctx context.Context, task models.Task) error

	// DeleteTask removes the task identified by (ownerID, name).
	//
	// It returns ErrTaskNotFound if no such task exists.
	DeleteTask(ctx context.Context, ownerID int64, name string) error

	// CompleteTask resets the task's last_completed to today.
	//
	// It returns ErrTaskNotFound if no such task exists.
	CompleteTask(ctx context.Context, ownerID int64, name string) error
}

// Notifier delivers one direct message to one owner. Delivery is
// best-effort; no confirmation is consumed.
type Notifier interface {
	SendDirectMessage(ctx context.Context, ownerID int64, text string) error
}

type AlertService interface {
	// Run drives the daily sleep/fire loop until ctx is cancelled.
	Run(ctx context.Context)

	// RunAlertPassNow executes one fetch-classify-aggregate-dispatch
	// pass synchronously.
	RunAlertPassNow(ctx context.Context) error
}

// Identity is the profile the OAuth provider reports for a logged-in user.
type Identity struct {
	ID       int64
	Username string
	Avatar   string
}

type AuthService interface {
	// AuthorizeURL builds the provider's consent page URL with the
	// given anti-forgery state.
	AuthorizeURL(state string) string

	// ExchangeCode trades an authorization code for the provider
	// identity behind it.
	ExchangeCode(ctx context.Context, code string) (*Identity, error)

	// ParseJWTToken parses an access token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	// CreateSession opens a fresh session for the identity, replacing
	// any previous sessions of the same owner, and returns it together
	// with a signed access token.
	CreateSession(ctx context.Context, identity Identity) (*SessionResult, error)

	// GetSessionByID returns ErrSessionNotFound for an unknown id and
	// ErrSessionExpired past the session's expiry.
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)

	// DeleteSessionsByOwner invalidates all of the owner's sessions.
	DeleteSessionsByOwner(ctx context.Context, ownerID int64) error
}

type SessionResult struct {
	Session              models.Session
	AccessToken          string
	AccessTokenExpiresAt time.Time
}
