// Package services holds the business logic between controllers and
// repositories. Services return apperr values with the exact client-facing
// messages; controllers only bind, delegate, and respond.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/shashiranjanraj/zaika/pkg/auth"
	"github.com/shashiranjanraj/zaika/pkg/identity"
	"github.com/shashiranjanraj/zaika/pkg/logger"
	"gorm.io/gorm"
)

// AuthService covers signup, login, federated sign-in, and profile
// management.
type AuthService struct {
	users    *repositories.UserRepository
	verifier identity.Verifier
}

// NewAuthService wires an AuthService. verifier may be nil when federated
// sign-in is not configured.
func NewAuthService(users *repositories.UserRepository, verifier identity.Verifier) *AuthService {
	return &AuthService{users: users, verifier: verifier}
}

// Signup registers a new user and returns the user with a fresh token.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &models.User{
		Username: username,
		Email:    strings.ToLower(email),
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperr.Conflict("User already exists")
		}
		return nil, "", err
	}

	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks credentials and returns the user with a fresh token. Unknown
// email and wrong password produce the same message so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Auth("Invalid credentials")
		}
		return nil, "", err
	}

	if !auth.CheckPassword(u.Password, password) {
		return nil, "", apperr.Auth("Invalid credentials")
	}

	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GoogleSignIn verifies a Google ID token, provisions an account on first
// sign-in, and returns the user with a session token.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.verifier == nil {
		return nil, "", apperr.Server("Server configuration error: Google sign-in not configured.")
	}

	profile, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", apperr.Auth("Invalid Google token")
	}

	u, err := s.users.FindByEmail(ctx, profile.Email)
	if err == nil {
		token, err := auth.GenerateToken(u.ID, u.Role)
		if err != nil {
			return nil, "", err
		}
		return u, token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	u, err = s.provisionGoogleUser(ctx, profile)
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) provisionGoogleUser(ctx context.Context, profile identity.Profile) (*models.User, error) {
	// Federated accounts never log in with this password; it only exists so
	// the column stays non-null and unguessable.
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(hex.EncodeToString(raw))
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username: s.usernameFor(ctx, profile),
		Email:    strings.ToLower(profile.Email),
		Password: hash,
		Role:     models.RoleUser,
		Avatar:   profile.Picture,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Username collision: retry once with a random suffix.
			u.Username = fmt.Sprintf("%s_%s", u.Username, hex.EncodeToString(raw[:3]))
			if err := s.users.Create(ctx, u); err != nil {
				return nil, err
			}
			return u, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) usernameFor(ctx context.Context, profile identity.Profile) string {
	base := strings.ReplaceAll(strings.TrimSpace(profile.Name), " ", "")
	if base == "" {
		base = strings.SplitN(profile.Email, "@", 2)[0]
	}

	taken, err := s.users.UsernameTaken(ctx, base)
	if err != nil {
		logger.Warn("auth: username lookup failed", "error", err)
	}
	if !taken {
		return base
	}

	suffix := make([]byte, 2)
	rand.Read(suffix)
	return fmt.Sprintf("%s_%s", base, hex.EncodeToString(suffix))
}

// Profile fetches the user's own account.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(u.Password, current) {
		return apperr.Auth("Current password is incorrect")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.users.Save(ctx, u)
}

// UpdateEmail changes the account email after checking uniqueness.
func (s *AuthService) UpdateEmail(ctx context.Context, userID uint, email string) (*models.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Email = strings.ToLower(email)
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email already in use by another account")
		}
		return nil, err
	}
	return u, nil
}

// UpdateUsername changes the display username.
func (s *AuthService) UpdateUsername(ctx context.Context, userID uint, username string) (*models.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.Username = username
	if err := s.users.Save(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Username already taken")
		}
		return nil, err
	}
	return u, nil
}

// UpdateAddress replaces the stored delivery address. Country defaults to
// India when the client omits it.
func (s *AuthService) UpdateAddress(ctx context.Context, userID uint, addr models.Address) (*models.User, error) {
	u, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if addr.Country == "" {
		addr.Country = "India"
	}
	u.Address = &addr
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteAccount removes the user.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.Profile(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

// ResolveUser adapts the repository for the auth middleware, which cannot
// import models directly.
func (s *AuthService) ResolveUser(ctx context.Context, id uint) (interface{}, bool) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, false
	}
	return u, true
}
