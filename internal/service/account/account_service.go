package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/Domenick1991/cinemabooking/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AccountUseCase interface {
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	Login(ctx context.Context, username, password string) (*domain.Account, string, error)
}

// TokenIssuer signs a session token for an authenticated username.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

type AccountService struct {
	accounts repository.AccountRepository
	tokens   TokenIssuer
}

func NewAccountService(accounts repository.AccountRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{accounts: accounts, tokens: tokens}
}

// Register creates a new account. The password is stored as a bcrypt hash.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrConflict)
		}
		return nil, err
	}

	return sanitize(acc), nil
}

// Login verifies credentials and issues a session token on success.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", errors.New("username and password are required")
	}

	acc, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}

	token := ""
	if s.tokens != nil {
		token, err = s.tokens.Issue(acc.Username)
		if err != nil {
			return nil, "", fmt.Errorf("issue token: %w", err)
		}
	}

	return sanitize(acc), token, nil
}

func sanitize(acc *domain.Account) *domain.Account {
	if acc == nil {
		return nil
	}
	return &domain.Account{
		ID:        acc.ID,
		Username:  acc.Username,
		CreatedAt: acc.CreatedAt,
	}
}

var _ AccountUseCase = (*AccountService)(nil)
