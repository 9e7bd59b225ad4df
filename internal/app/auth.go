package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"staybook/internal/domain"
)

const minPasswordLen = 6

type RegisterInput struct {
	Username     string
	Email        string
	Password     string
	FirstName    string
	LastName     string
	MobileNumber string
	Image        string
	Role         domain.Role
}

type AuthService struct {
	store   domain.Store
	tokens  domain.TokenIssuer
	revoker domain.TokenRevoker
}

// NewAuthService wires authentication. A nil revoker makes logout a no-op on
// the server side; tokens then stay valid until they expire.
func NewAuthService(s domain.Store, t domain.TokenIssuer, r domain.TokenRevoker) *AuthService {
	return &AuthService{store: s, tokens: t, revoker: r}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var f fields
	f.str("username", &in.Username)
	f.str("email", &in.Email)
	f.str("password", &in.Password)
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			f.add("Invalid email address.")
		}
	}
	if in.Password != "" && len(in.Password) < minPasswordLen {
		f.add(fmt.Sprintf("Password must be at least %d characters.", minPasswordLen))
	}
	if err := f.err(); err != nil {
		return domain.User{}, err
	}

	for _, login := range []string{in.Email, in.Username} {
		if _, err := s.store.FindUser(ctx, login); err == nil {
			return domain.User{}, invalid("This user already exists.")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	u := domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		Image:        in.Image,
		Role:         role,
	}
	if err := s.store.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.User{}, invalid("This user already exists.")
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks credentials given as email or username and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, domain.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	var f fields
	f.str("email", &login)
	f.str("password", &password)
	if err := f.err(); err != nil {
		return "", domain.User{}, err
	}
	u, err := s.store.FindUser(ctx, login)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", domain.User{}, ErrInvalidCredentials
	}
	token, _, err := s.tokens.Issue(u)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// Authenticate resolves a bearer token to its current user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.User{}, ErrUnauthorized
	}
	if s.revoker != nil {
		revoked, err := s.revoker.Revoked(ctx, token)
		if err != nil {
			return domain.User{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return domain.User{}, ErrUnauthorized
		}
	}
	u, err := s.store.GetUser(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, ErrUnauthorized
	}
	return u, err
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ErrUnauthorized
	}
	return s.revoker.Revoke(ctx, token, claims.ExpiresAt)
}
