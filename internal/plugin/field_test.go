package plugin

import (
	"strings"
	"testing"
)

func TestValidateFieldsRequired(t *testing.T) {
	fields := []Field{
		{Name: "host", Label: "Host", Kind: KindText, Required: true},
		{Name: "user", Label: "Username", Kind: KindText, Required: true},
		{Name: "note", Label: "Note", Kind: KindText},
	}

	msgs := ValidateFields(fields, map[string]string{})
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(msgs), msgs)
	}
	if msgs[0] != "Host is required" {
		t.Errorf("expected declared-order messages, got %q first", msgs[0])
	}
	if msgs[1] != "Username is required" {
		t.Errorf("expected 'Username is required', got %q", msgs[1])
	}
}

func TestValidateFieldsIntRange(t *testing.T) {
	fields := []Field{
		{Name: "port", Label: "Port", Kind: KindInt, Min: 1, Max: 65535},
	}

	tests := []struct {
		value   string
		wantMsg string
	}{
		{"22", ""},
		{"65535", ""},
		{"", ""}, // optional and empty
		{"0", "Port must be between 1 and 65535"},
		{"70000", "Port must be between 1 and 65535"},
		{"abc", "Port must be a number"},
	}

	for _, tt := range tests {
		msgs := ValidateFields(fields, map[string]string{"port": tt.value})
		if tt.wantMsg == "" {
			if len(msgs) != 0 {
				t.Errorf("port=%q: unexpected messages %v", tt.value, msgs)
			}
			continue
		}
		if len(msgs) != 1 || msgs[0] != tt.wantMsg {
			t.Errorf("port=%q: expected %q, got %v", tt.value, tt.wantMsg, msgs)
		}
	}
}

func TestValidateFieldsChoice(t *testing.T) {
	withChoices := []Field{
		{Name: "vendor", Label: "Vendor", Kind: KindChoice, Choices: []string{"a", "b"}},
	}
	if msgs := ValidateFields(withChoices, map[string]string{"vendor": "a"}); len(msgs) != 0 {
		t.Errorf("valid choice rejected: %v", msgs)
	}
	if msgs := ValidateFields(withChoices, map[string]string{"vendor": "c"}); len(msgs) != 1 {
		t.Errorf("invalid choice accepted: %v", msgs)
	}

	// A choice field with no declared choices has no valid value.
	noChoices := []Field{
		{Name: "vendor", Label: "Vendor", Kind: KindChoice},
	}
	msgs := ValidateFields(noChoices, map[string]string{"vendor": "anything"})
	if len(msgs) != 1 || !strings.Contains(msgs[0], "no valid options") {
		t.Errorf("expected 'no valid options' message, got %v", msgs)
	}
}

func TestValidateFieldsBool(t *testing.T) {
	fields := []Field{
		{Name: "tls", Label: "TLS", Kind: KindBool},
	}
	for _, ok := range []string{"", "true", "false"} {
		if msgs := ValidateFields(fields, map[string]string{"tls": ok}); len(msgs) != 0 {
			t.Errorf("tls=%q: unexpected messages %v", ok, msgs)
		}
	}
	if msgs := ValidateFields(fields, map[string]string{"tls": "yes"}); len(msgs) != 1 {
		t.Errorf("tls=yes accepted: %v", msgs)
	}
}
