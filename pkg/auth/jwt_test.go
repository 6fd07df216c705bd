package auth_test

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashiranjanraj/zaika/config"
	"github.com/shashiranjanraj/zaika/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken(42, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	id, ok := claims.UserID()
	if !ok || id != 42 {
		t.Errorf("expected user id 42, got %d (ok=%v)", id, ok)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %q", claims.Role)
	}
}

func TestExpiredToken(t *testing.T) {
	// Hand-craft a token that expired an hour ago, signed with the same
	// secret the validator uses.
	claims := auth.Claims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(7),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = auth.ValidateToken(token)
	if !errors.Is(err, auth.ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}
}

func TestMalformedToken(t *testing.T) {
	_, err := auth.ValidateToken("not.a.jwt")
	if err == nil {
		t.Fatal("expected error for malformed token")
	}
	if errors.Is(err, auth.ErrExpired) {
		t.Error("malformed token must not be reported as expired")
	}
}

func TestWrongSigningKeyRejected(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); err == nil {
		t.Error("expected token signed with a different key to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !auth.CheckPassword(hash, "s3cret-pass") {
		t.Error("expected correct password to verify")
	}
	if auth.CheckPassword(hash, "wrong-pass") {
		t.Error("expected wrong password to fail")
	}
}
