// Package user handles account registration, login and the loyalty side of
// checkout: awarding points and keeping the per-user order history.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kantinho-pos/internal/domain"
	tokenrepo "kantinho-pos/internal/repository/token"
	userrepo "kantinho-pos/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles register/login flows and identity-store writes.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	sessionTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo userrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		sessionTTL:  48 * time.Hour,
		passwordMin: 8,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates an account. The first account ever registered becomes the
// admin; everyone after that is a customer.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalid)
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email required", domain.ErrInvalid)
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("%w: password must have at least %d characters", domain.ErrInvalid, s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleCustomer
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = domain.RoleAdmin
	}

	return s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
	})
}

// Login validates credentials and returns the user plus a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	session, err := s.tokens.Issue(ctx, u.ID, "session", s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return u, session, nil
}

// Logout invalidates a session token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) {
	s.tokens.Revoke(ctx, token)
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	history, err := s.repo.OrderHistory(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.OrderHistory = history
	return u, nil
}

// UpdateProfile updates the mutable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID, name, phone, address string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalid)
	}
	return s.repo.UpdateProfile(ctx, userID, name, strings.TrimSpace(phone), strings.TrimSpace(address))
}

// AwardPoints credits loyalty points earned at checkout.
func (s *Service) AwardPoints(ctx context.Context, userID string, points int) error {
	if points <= 0 {
		return nil
	}
	_, err := s.repo.AddLoyaltyPoints(ctx, userID, points)
	return err
}

// RedeemPoints spends loyalty points; the repo rejects overdrafts.
func (s *Service) RedeemPoints(ctx context.Context, userID string, points int) (int, error) {
	if points <= 0 {
		return 0, fmt.Errorf("%w: points must be positive", domain.ErrInvalid)
	}
	return s.repo.AddLoyaltyPoints(ctx, userID, -points)
}

// AppendOrderToHistory records a finalized order against the user.
func (s *Service) AppendOrderToHistory(ctx context.Context, userID, orderID string) error {
	return s.repo.AppendOrder(ctx, userID, orderID)
}
