// Package auth contains user registration and login use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterUserInput represents the input for registering a new account.
type RegisterUserInput struct {
	Email    string
	Password string
}

// RegisterUserOutput represents a freshly registered, logged-in account.
type RegisterUserOutput struct {
	User        *entity.User
	AccessToken string
}

// RegisterUserUseCase creates a new user account on the basic plan.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute validates the credentials, stores the user with a hashed password
// and returns a signed access token.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid email address",
			domainerror.ErrInvalidCredentials,
		)
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			err.Error(),
			domainerror.ErrInvalidCredentials,
		)
	}

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, hash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrEmailAlreadyRegistered) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeEmailAlreadyRegistered,
				"email already registered",
				domainerror.ErrEmailAlreadyRegistered,
			)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &RegisterUserOutput{User: user, AccessToken: token}, nil
}
