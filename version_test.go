package tricolor

import "testing"

func TestCompatibleWith(t *testing.T) {
	ok, err := CompatibleWith(">= 0.1.0, < 0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("Version %s should satisfy >= 0.1.0, < 0.2.0", Version)
	}
}

func TestIncompatibleWith(t *testing.T) {
	ok, err := CompatibleWith(">= 99.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("Version %s should not satisfy >= 99.0.0", Version)
	}
}

func TestCompatibleWithInvalidConstraint(t *testing.T) {
	if _, err := CompatibleWith("not a constraint"); err == nil {
		t.Fatal("expected an error for a malformed constraint")
	}
}
