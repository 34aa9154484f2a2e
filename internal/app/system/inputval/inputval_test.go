package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name+tag@sub.example.co.uk", true},
		{"a@b.co", true},
		{"  padded@example.com  ", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user@localhost", false}, // needs a dot after the @
		{"user @example.com", false},
		{"user@exam ple.com", false},
		{"a@@b.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

type sample struct {
	Name     string `validate:"required,max=10" label:"Company name"`
	Email    string `validate:"loose_email" label:"Email"`
}

func TestValidate_Required(t *testing.T) {
	res := Validate(sample{})
	if !res.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := res.First(); got != "Company name is required." {
		t.Errorf("First() = %q", got)
	}
}

func TestValidate_Max(t *testing.T) {
	res := Validate(sample{Name: "abcdefghijk"})
	if got := res.First(); got != "Company name must be at most 10 characters." {
		t.Errorf("First() = %q", got)
	}
}

func TestValidate_LooseEmail(t *testing.T) {
	if res := Validate(sample{Name: "x", Email: ""}); res.HasErrors() {
		t.Errorf("blank email should pass, got %q", res.First())
	}
	res := Validate(sample{Name: "x", Email: "nope"})
	if got := res.First(); got != "Email does not look like an email address." {
		t.Errorf("First() = %q", got)
	}
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(sample{Name: "Acme", Email: "a@b.co"})
	if res.HasErrors() {
		t.Errorf("unexpected errors: %+v", res.Errors)
	}
	if res.First() != "" {
		t.Error("First() should be empty when valid")
	}
}
