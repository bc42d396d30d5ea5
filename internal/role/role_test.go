package role

import (
	"errors"
	"testing"
)

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		code  int
		label string
	}{
		{RoleAdmin, "admin"},
		{RoleStaff, "staff"},
		{RoleUser, "user"},
	}
	for _, tt := range tests {
		label, err := RoleLabel(tt.code)
		if err != nil {
			t.Fatalf("unexpected error for code %d: %v", tt.code, err)
		}
		if label != tt.label {
			t.Errorf("code %d: expected %q, got %q", tt.code, tt.label, label)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		code  int
		label string
	}{
		{StatusInactive, "inactive"},
		{StatusNew, "new"},
		{StatusActive, "active"},
	}
	for _, tt := range tests {
		label, err := StatusLabel(tt.code)
		if err != nil {
			t.Fatalf("unexpected error for code %d: %v", tt.code, err)
		}
		if label != tt.label {
			t.Errorf("code %d: expected %q, got %q", tt.code, tt.label, label)
		}
	}
}

func TestUndefinedCodes(t *testing.T) {
	if _, err := RoleLabel(99); !errors.Is(err, ErrUndefinedCode) {
		t.Fatalf("expected ErrUndefinedCode, got %v", err)
	}
	if _, err := StatusLabel(-1); !errors.Is(err, ErrUndefinedCode) {
		t.Fatalf("expected ErrUndefinedCode, got %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin(RoleAdmin) {
		t.Fatal("expected admin code to be admin")
	}
	if IsAdmin(RoleStaff) || IsAdmin(RoleUser) {
		t.Fatal("expected non-admin codes to not be admin")
	}
}

func TestValidCodes(t *testing.T) {
	for _, code := range []int{RoleAdmin, RoleStaff, RoleUser} {
		if !ValidRoleCode(code) {
			t.Errorf("expected role code %d to be valid", code)
		}
	}
	if ValidRoleCode(3) {
		t.Error("expected role code 3 to be invalid")
	}
	for _, code := range []int{StatusInactive, StatusNew, StatusActive} {
		if !ValidStatusCode(code) {
			t.Errorf("expected status code %d to be valid", code)
		}
	}
	if ValidStatusCode(42) {
		t.Error("expected status code 42 to be invalid")
	}
}
