package validate_test

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/zaika/pkg/validate"
)

type signupInput struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    string  `json:"phone"    validate:"required,digits=10"`
	Total    float64 `json:"total"    validate:"required,gt=0"`
	Website  string  `json:"website"  validate:"nullable,max=100"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(signupInput{
		Username: "john_doe",
		Email:    "john@example.com",
		Password: "secret123",
		Phone:    "9876543210",
		Total:    499.5,
		Website:  "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(signupInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["username"]; !ok {
		t.Error("expected username to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestDigitsRule(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"required,digits=10"`
	}
	if errs := validate.Struct(in{Phone: "12345"}); !validate.HasErrors(errs) {
		t.Error("expected short phone to fail")
	}
	if errs := validate.Struct(in{Phone: "12345abcde"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric phone to fail")
	}
	if errs := validate.Struct(in{Phone: "9876543210"}); validate.HasErrors(errs) {
		t.Errorf("expected valid phone to pass, got: %v", errs)
	}
}

func TestGtRule(t *testing.T) {
	type in struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Amount: -5}); !validate.HasErrors(errs) {
		t.Error("expected negative amount to fail")
	}
	if errs := validate.Struct(in{Amount: 0.01}); validate.HasErrors(errs) {
		t.Errorf("expected positive amount to pass, got: %v", errs)
	}
}

func TestStringLengthRules(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=3,max=5"`
	}
	if errs := validate.Struct(in{Name: "ab"}); !validate.HasErrors(errs) {
		t.Error("expected too-short name to fail")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); !validate.HasErrors(errs) {
		t.Error("expected too-long name to fail")
	}
	if errs := validate.Struct(in{Name: "abcd"}); validate.HasErrors(errs) {
		t.Errorf("expected in-bounds name to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=admin,user"`
	}
	if errs := validate.Struct(in{Role: "root"}); !validate.HasErrors(errs) {
		t.Error("expected unknown role to fail")
	}
	if errs := validate.Struct(in{Role: "admin"}); validate.HasErrors(errs) {
		t.Errorf("expected admin to pass, got: %v", errs)
	}
}

func TestJoinIsStableAndComplete(t *testing.T) {
	errs := validate.Struct(signupInput{})
	joined := validate.Join(errs)

	for _, field := range []string{"username", "email", "password", "phone"} {
		if !strings.Contains(joined, field) {
			t.Errorf("joined message missing field %q: %s", field, joined)
		}
	}

	if joined != validate.Join(errs) {
		t.Error("Join output should be deterministic")
	}
}
