package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/finwise/backend/internal/application/adapter"
	"github.com/finwise/backend/internal/domain/entity"
	domainerror "github.com/finwise/backend/internal/domain/error"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return domainerror.ErrEmailAlreadyRegistered
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePlan(_ context.Context, id uuid.UUID, plan entity.PlanTier) error {
	for _, user := range f.byEmail {
		if user.ID == id {
			user.Plan = plan
			return nil
		}
	}
	return domainerror.ErrUserNotFound
}

// fakePasswordService hashes by prefixing; strength requires 8+ characters.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

func (stubTokens) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func newRegister(repo *fakeUserRepo) *RegisterUserUseCase {
	return NewRegisterUserUseCase(repo, fakePasswordService{}, stubTokens{})
}

func newLogin(repo *fakeUserRepo) *LoginUserUseCase {
	return NewLoginUserUseCase(repo, fakePasswordService{}, stubTokens{})
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	register := newRegister(repo)
	login := newLogin(repo)

	registered, err := register.Execute(context.Background(), RegisterUserInput{
		Email:    "Ana@Example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if registered.User.Email != "ana@example.com" {
		t.Errorf("email should be normalized, got %q", registered.User.Email)
	}
	if registered.User.Plan != entity.PlanTierBasic {
		t.Errorf("new users start on basic, got %q", registered.User.Plan)
	}
	if registered.AccessToken == "" {
		t.Error("expected an access token")
	}

	logged, err := login.Execute(context.Background(), LoginUserInput{
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logged.User.ID != registered.User.ID {
		t.Error("login resolved a different user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	register := newRegister(repo)

	if _, err := register.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := register.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "other password"})
	if !errors.Is(err, domainerror.ErrEmailAlreadyRegistered) {
		t.Errorf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	repo := newFakeUserRepo()
	register := newRegister(repo)

	if _, err := register.Execute(context.Background(), RegisterUserInput{Email: "not-an-email", Password: "correct horse"}); !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Errorf("bad email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := register.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "short"}); !errors.Is(err, domainerror.ErrInvalidCredentials) {
		t.Errorf("weak password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDoesNotLeakUnknownEmails(t *testing.T) {
	repo := newFakeUserRepo()
	register := newRegister(repo)
	login := newLogin(repo)

	if _, err := register.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, unknownErr := login.Execute(context.Background(), LoginUserInput{Email: "ghost@example.com", Password: "whatever!"})
	_, wrongErr := login.Execute(context.Background(), LoginUserInput{Email: "ana@example.com", Password: "wrong password"})

	if !errors.Is(unknownErr, domainerror.ErrInvalidCredentials) || !errors.Is(wrongErr, domainerror.ErrInvalidCredentials) {
		t.Fatalf("both failures must be ErrInvalidCredentials, got %v / %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("error messages differ: %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
}
