package viewdata

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/interno/internal/app/system/auth"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "?"},
		{"   ", "?"},
		{"ada", "A"},
		{"Ada Lovelace", "AL"},
		{"ada byron lovelace", "AB"},
		{"élodie martin", "ÉM"},
	}
	for _, tc := range tests {
		if got := Initials(tc.in); got != tc.want {
			t.Errorf("Initials(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewBaseVM_SignedIn(t *testing.T) {
	req := httptest.NewRequest("GET", "/regions", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com"})

	vm := NewBaseVM(req, "Regions", "/")
	if !vm.IsLoggedIn {
		t.Error("expected IsLoggedIn")
	}
	if vm.UserInitials != "AL" {
		t.Errorf("UserInitials = %q", vm.UserInitials)
	}
	if vm.SiteName != SiteName || vm.Title != "Regions" {
		t.Errorf("unexpected vm: %+v", vm)
	}
	if vm.CurrentPath != "/regions" {
		t.Errorf("CurrentPath = %q", vm.CurrentPath)
	}
}

func TestNewBaseVM_Anonymous(t *testing.T) {
	vm := NewBaseVM(httptest.NewRequest("GET", "/login", nil), "Sign in", "/")
	if vm.IsLoggedIn || vm.UserInitials != "" {
		t.Errorf("unexpected signed-in fields: %+v", vm)
	}
}
