// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PlanTier represents the billing plan a user is on.
type PlanTier string

const (
	PlanTierBasic   PlanTier = "basic"
	PlanTierPremium PlanTier = "premium"
)

// User represents a registered user account.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Plan         PlanTier
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User entity on the basic plan.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()

	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         PlanTierBasic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsPremium reports whether the user is on the premium plan.
func (u *User) IsPremium() bool {
	return u.Plan == PlanTierPremium
}
