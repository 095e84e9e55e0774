package cli

import (
	"testing"

	"github.com/swellwatch/buoy/pkg/errors"
)

func TestParseSyncSelector(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no selector", nil, ""},
		{"stations only", []string{"stations"}, "stations"},
		{"reports only", []string{"reports"}, "reports"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSyncSelector(tt.args)
			if err != nil {
				t.Fatalf("parseSyncSelector failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("selector = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSyncSelectorRejectsUnknown(t *testing.T) {
	_, err := parseSyncSelector([]string{"waves"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("parseSyncSelector = %v, want INVALID_INPUT", err)
	}
}

func TestSyncCmdAcceptsSelector(t *testing.T) {
	cmd := newSyncCmd()

	for _, args := range [][]string{nil, {"stations"}, {"reports"}} {
		if err := cmd.ValidateArgs(args); err != nil {
			t.Errorf("ValidateArgs(%v) = %v, want nil", args, err)
		}
	}

	if err := cmd.ValidateArgs([]string{"stations", "reports"}); err == nil {
		t.Error("ValidateArgs should reject more than one selector")
	}
}
