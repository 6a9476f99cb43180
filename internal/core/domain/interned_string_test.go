package domain_test

import (
	"testing"

	"go.trai.ch/recall/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	s1 := domain.NewInternedString("compile")
	s2 := domain.NewInternedString("compile")
	s3 := domain.NewInternedString("test")

	if s1 != s2 {
		t.Error("expected equal strings to share a handle")
	}
	if s1 == s3 {
		t.Error("expected different strings to differ")
	}
	if s1.String() != "compile" {
		t.Errorf("expected 'compile', got %q", s1.String())
	}
	if s1.Compare(s3) >= 0 {
		t.Error("expected 'compile' to sort before 'test'")
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	if !zero.IsZero() || zero.String() != "" {
		t.Errorf("expected zero value to be the empty string")
	}
}

func TestInternedString_Text(t *testing.T) {
	text, err := domain.NewInternedString("lib:compile").MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var restored domain.InternedString
	if err := restored.UnmarshalText(text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored != domain.NewInternedString("lib:compile") {
		t.Error("expected restored value to share the interned handle")
	}
}

func TestStrings(t *testing.T) {
	got := domain.Strings(domain.NewInternedStrings([]string{"a", "b"}))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
	if domain.Strings(nil) != nil {
		t.Error("expected nil for nil input")
	}
}
