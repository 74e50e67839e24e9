package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestSelectSymbols(t *testing.T) {
	tests := map[string]struct {
		caps          TerminalCapabilities
		wantCheckmark string
		wantSpinner   int
	}{
		"unicode terminal": {
			caps:          TerminalCapabilities{SupportsUnicode: true},
			wantCheckmark: "✓",
			wantSpinner:   14,
		},
		"ascii fallback": {
			caps:          TerminalCapabilities{SupportsUnicode: false},
			wantCheckmark: "[OK]",
			wantSpinner:   9,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := SelectSymbols(tt.caps)
			if got.Checkmark != tt.wantCheckmark {
				t.Errorf("Checkmark = %q, want %q", got.Checkmark, tt.wantCheckmark)
			}
			if got.SpinnerSet != tt.wantSpinner {
				t.Errorf("SpinnerSet = %d, want %d", got.SpinnerSet, tt.wantSpinner)
			}
		})
	}
}

func TestDetectTerminalCapabilities_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	caps := DetectTerminalCapabilities()
	if caps.SupportsColor {
		t.Error("SupportsColor = true, want false with NO_COLOR set")
	}
}

func TestIndicator_NonTTYFallback(t *testing.T) {
	var buf bytes.Buffer
	ind := NewIndicator(&buf, TerminalCapabilities{IsTTY: false})

	ind.Start("running 3 tasks")
	ind.Finish("ran demo", true)

	got := buf.String()
	if !strings.Contains(got, "running 3 tasks...") {
		t.Errorf("Start() output %q missing plain progress line", got)
	}
	if !strings.Contains(got, "ran demo") {
		t.Errorf("Finish() output %q missing final line", got)
	}
}

func TestIndicator_FailureSymbol(t *testing.T) {
	var buf bytes.Buffer
	ind := NewIndicator(&buf, TerminalCapabilities{IsTTY: false})

	ind.Start("running")
	ind.Finish("ran demo", false)

	if !strings.Contains(buf.String(), "[FAIL]") {
		t.Errorf("Finish() output %q missing failure symbol", buf.String())
	}
}
