package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kantinho-pos/internal/domain"
	tokenrepo "kantinho-pos/internal/repository/token"
	userrepo "kantinho-pos/internal/repository/user"
)

type stubUserRepo struct {
	users      map[string]*domain.User
	byEmail    map[string]*domain.User
	count      int64
	created    []domain.User
	lastDelta  int
	balance    int
	balanceErr error
	orders     map[string][]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		orders:  make(map[string][]string),
	}
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, ok := s.byEmail[u.Email]; ok {
		return nil, domain.ErrAlreadyExists
	}
	u.ID = "user-" + u.Email
	s.users[u.ID] = &u
	s.byEmail[u.Email] = &u
	s.created = append(s.created, u)
	s.count++
	return &u, nil
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) Count(_ context.Context) (int64, error) { return s.count, nil }

func (s *stubUserRepo) UpdateProfile(_ context.Context, id string, name, phone, address string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.Name, u.Phone, u.Address = name, phone, address
	return u, nil
}

func (s *stubUserRepo) AddLoyaltyPoints(_ context.Context, _ string, delta int) (int, error) {
	if s.balanceErr != nil {
		return 0, s.balanceErr
	}
	s.lastDelta = delta
	s.balance += delta
	return s.balance, nil
}

func (s *stubUserRepo) AppendOrder(_ context.Context, userID, orderID string) error {
	s.orders[userID] = append(s.orders[userID], orderID)
	return nil
}

func (s *stubUserRepo) OrderHistory(_ context.Context, userID string) ([]string, error) {
	return s.orders[userID], nil
}

type stubTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (s *stubTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := s.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	s.tokens[t.Token] = t
	return nil
}

func (s *stubTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (s *stubTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tokens, token)
	return nil
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := New(repo, newStubTokenRepo())

	first, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@kantinho.cv", Password: "segredo123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", first.Role)
	}

	second, err := svc.Register(context.Background(), RegisterInput{Name: "Bruno", Email: "bruno@kantinho.cv", Password: "segredo123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %s", second.Role)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := New(newStubUserRepo(), newStubTokenRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.cv", Password: "segredo123"}); err == nil {
		t.Fatalf("expected name validation error")
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Password: "segredo123"}); err == nil {
		t.Fatalf("expected email validation error")
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "a@b.cv", Password: "curta"}); err == nil {
		t.Fatalf("expected password validation error")
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := New(repo, newStubTokenRepo())
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@kantinho.cv", Password: "segredo123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash := repo.created[0].PasswordHash
	if hash == "segredo123" || hash == "" {
		t.Fatalf("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo123")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	repo := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := New(repo, tokens)

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@kantinho.cv", Password: "segredo123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, session, err := svc.Login(context.Background(), "Ana@Kantinho.cv", "segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session == "" || u.Email != "ana@kantinho.cv" {
		t.Fatalf("unexpected login result: %v %q", u, session)
	}

	authed, err := svc.Authenticate(context.Background(), session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authed.ID != u.ID {
		t.Fatalf("unexpected user: %+v", authed)
	}

	svc.Logout(context.Background(), session)
	if _, err := svc.Authenticate(context.Background(), session); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	svc := New(repo, newStubTokenRepo())
	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@kantinho.cv", Password: "segredo123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ana@kantinho.cv", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ninguem@kantinho.cv", "segredo123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	repo := newStubUserRepo()
	tokens := newStubTokenRepo()
	svc := New(repo, tokens)
	svc.sessionTTL = -time.Minute

	if _, err := svc.Register(context.Background(), RegisterInput{Name: "Ana", Email: "ana@kantinho.cv", Password: "segredo123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, session, err := svc.Login(context.Background(), "ana@kantinho.cv", "segredo123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), session); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}
}

func TestLoyaltyPoints(t *testing.T) {
	repo := newStubUserRepo()
	svc := New(repo, newStubTokenRepo())

	if err := svc.AwardPoints(context.Background(), "u1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastDelta != 3 {
		t.Fatalf("expected delta 3, got %d", repo.lastDelta)
	}
	if err := svc.AwardPoints(context.Background(), "u1", 0); err != nil {
		t.Fatalf("zero points must be a no-op: %v", err)
	}

	balance, err := svc.RedeemPoints(context.Background(), "u1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 1 || repo.lastDelta != -2 {
		t.Fatalf("unexpected redeem: balance=%d delta=%d", balance, repo.lastDelta)
	}

	if _, err := svc.RedeemPoints(context.Background(), "u1", 0); err == nil {
		t.Fatalf("expected validation error")
	}

	repo.balanceErr = userrepo.ErrInsufficientPoints
	if _, err := svc.RedeemPoints(context.Background(), "u1", 100); !errors.Is(err, userrepo.ErrInsufficientPoints) {
		t.Fatalf("expected ErrInsufficientPoints, got %v", err)
	}
}
