package services

import (
	"strings"
	"testing"
)

func TestNewValidatorRegistersTags(t *testing.T) {
	v := NewValidator()
	err := v.Struct(struct {
		Amount string `json:"amount" validate:"amount"`
		Name   string `json:"name" validate:"notblank"`
		Cat    string `json:"category" validate:"category"`
	}{Amount: "0", Name: "  ", Cat: "99"})

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	want := map[string]string{
		"amount":   "amount must be a positive amount",
		"name":     "name must not be blank",
		"category": "category must be one of",
	}
	for field, prefix := range want {
		if !strings.HasPrefix(ve.Fields[field], prefix) {
			t.Errorf("Fields[%q] = %q, want prefix %q", field, ve.Fields[field], prefix)
		}
	}
}

func TestNewValidatorRejectsBadTag(t *testing.T) {
	tests := []struct {
		name string
		tags []customTag
	}{
		{"empty tag", []customTag{{tag: "", fn: notBlank, msg: "{0} bad"}}},
		{"nil func", []customTag{{tag: "broken", fn: nil, msg: "{0} bad"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := newValidator(tt.tags); err == nil {
				t.Fatal("expected registration error")
			}
		})
	}
}

func TestNewValidatorPanicsOnRegistrationError(t *testing.T) {
	saved := expenseTags
	t.Cleanup(func() { expenseTags = saved })
	expenseTags = []customTag{{tag: "", fn: notBlank, msg: "{0} bad"}}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewValidator()
}
