package bot

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     string
		wantRest int
		wantErr  bool
	}{
		{"integer", []string{"100"}, "100", 0, false},
		{"two decimals", []string{"12.50", "food"}, "12.5", 1, false},
		{"rounded to cents", []string{"12.505", "a", "b"}, "12.51", 2, false},
		{"no args", nil, "", 0, true},
		{"not a number", []string{"abc"}, "", 0, true},
		{"negative", []string{"-5"}, "", 0, true},
		{"zero", []string{"0"}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, rest, err := parseAmount(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", amount)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !amount.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, amount)
			}
			if len(rest) != tt.wantRest {
				t.Errorf("expected %d remaining tokens, got %d", tt.wantRest, len(rest))
			}
		})
	}
}

func TestDescription(t *testing.T) {
	if d := description(nil); d != nil {
		t.Errorf("expected nil for no tokens, got %q", *d)
	}
	if d := description([]string{"lunch", "today"}); d == nil || *d != "lunch today" {
		t.Errorf("expected joined tokens, got %v", d)
	}
}
