package handler

import (
	"strings"
	"testing"
)

type passwordForm struct {
	Password string `json:"password" validate:"required,strongpassword"`
}

func TestValidator_StrongPassword(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&passwordForm{Password: "Abcdef1@"}); err != nil {
		t.Fatalf("expected strong password to pass, got %v", err)
	}
	err := v.Validate(&passwordForm{Password: "abcdef12"})
	if err == nil {
		t.Fatalf("expected weak password to fail")
	}
	if !strings.Contains(err.Error(), "password does not meet the password policy") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&taskRequest{Title: "x", DueDate: "tomorrow"})
	if err == nil || !strings.Contains(err.Error(), "dueDate must be a date in YYYY-MM-DD format") {
		t.Fatalf("unexpected error: %v", err)
	}

	err = v.Validate(&signupRequest{})
	if err == nil {
		t.Fatalf("expected errors for empty signup")
	}
	for _, field := range []string{"username is required", "email is required", "password is required"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %q in %q", field, err.Error())
		}
	}
}
