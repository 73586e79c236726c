package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/event"
	"github.com/thiagodifaria/Begriff/pkg/events"
)

// User is the aggregate root for registered accounts.
type User struct {
	createdAt    time.Time
	updatedAt    time.Time
	email        string
	passwordHash string
	domainEvents []events.DomainEvent
	id           uuid.UUID
	active       bool
}

// NewUser creates a new active user. The password hash must already be
// computed by the caller; the aggregate never sees plaintext credentials.
func NewUser(email, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("email %q is not valid", email)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	u := &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}
	u.domainEvents = append(u.domainEvents, event.NewUserRegistered(u.id, u.email, now))
	return u, nil
}

// Deactivate disables the account. Deactivated users fail authentication.
func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = time.Now().UTC()
}

// ReconstructUser rebuilds a User from persisted data (no validation, no events).
func ReconstructUser(id uuid.UUID, email, passwordHash string, active bool, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		domainEvents: make([]events.DomainEvent, 0),
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Active() bool         { return u.active }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (u *User) DomainEvents() []events.DomainEvent {
	evts := u.domainEvents
	u.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
