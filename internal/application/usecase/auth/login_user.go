package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

// LoginUserInput represents the input for logging in.
type LoginUserInput struct {
	Email    string
	Password string
}

// LoginUserOutput represents a successful login.
type LoginUserOutput struct {
	User        *entity.User
	AccessToken string
}

// LoginUserUseCase authenticates a user by email and password.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute verifies the credentials and returns a signed access token. An
// unknown email and a wrong password produce the same error, so the endpoint
// does not leak which emails are registered.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	invalidCredentials := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, invalidCredentials
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginUserOutput{User: user, AccessToken: token}, nil
}
