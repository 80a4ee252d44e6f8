package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("dni", Dni); err != nil {
		t.Fatalf("register dni: %v", err)
	}
	if err := v.RegisterValidation("slot", Slot); err != nil {
		t.Fatalf("register slot: %v", err)
	}
	return v
}

func TestDni(t *testing.T) {
	v := newValidate(t)
	tests := []struct {
		dni   string
		valid bool
	}{
		{"12345678Z", true},  // 12345678 % 23 = 14 -> Z
		{"00000000T", true},  // 0 % 23 = 0 -> T
		{"12345678z", true},  // lower-case letter accepted
		{"12345678A", false}, // wrong control letter
		{"1234567Z", false},  // too short
		{"123456789", false}, // no letter
		{"", false},
	}
	for _, tt := range tests {
		err := v.Var(tt.dni, "dni")
		if tt.valid && err != nil {
			t.Fatalf("%q should be valid, got %v", tt.dni, err)
		}
		if !tt.valid && err == nil {
			t.Fatalf("%q should be rejected", tt.dni)
		}
	}
}

func TestSlot(t *testing.T) {
	v := newValidate(t)
	for _, label := range []string{"10:00", "13:00", "16:00", "19:00"} {
		if err := v.Var(label, "slot"); err != nil {
			t.Fatalf("%q is in the catalog and should be valid", label)
		}
	}
	for _, label := range []string{"14:00", "09:00", "20:00", "10:30", "10", ""} {
		if err := v.Var(label, "slot"); err == nil {
			t.Fatalf("%q is outside the catalog and must be rejected", label)
		}
	}
}

func TestPasswordRules(t *testing.T) {
	v := validator.New()
	for name, fn := range map[string]validator.Func{
		"hasupper":   HasUpper,
		"haslower":   HasLower,
		"hasdigit":   HasDigit,
		"hasspecial": HasSpecial,
		"nospaces":   NoWhiteSpaces,
	} {
		if err := v.RegisterValidation(name, fn); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if err := v.Var("Abc123!x", "hasupper,haslower,hasdigit,hasspecial,nospaces"); err != nil {
		t.Fatalf("strong password rejected: %v", err)
	}
	if err := v.Var("abc123!x", "hasupper"); err == nil {
		t.Fatal("password without uppercase should fail hasupper")
	}
	if err := v.Var("has space", "nospaces"); err == nil {
		t.Fatal("password with a space should fail nospaces")
	}
}
