package chain

import (
	"errors"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityInfo, "INFO"},
		{SeverityDebug, "DEBUG"},
		{SeverityError, "ERROR"},
		{Severity(7), "SEVERITY(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
		wantErr  bool
	}{
		{"INFO", SeverityInfo, false},
		{"debug", SeverityDebug, false},
		{"  Error ", SeverityError, false},
		{"WARN", SeverityInfo, true},
		{"", SeverityInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownSeverity) {
				t.Errorf("expected ErrUnknownSeverity, got %v", err)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseSeverity(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	for _, sev := range AllSeverities() {
		text, err := sev.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", sev, err)
		}

		var decoded Severity
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if decoded != sev {
			t.Errorf("round trip: got %v, want %v", decoded, sev)
		}
	}

	if _, err := Severity(9).MarshalText(); err == nil {
		t.Error("MarshalText should reject an undefined severity")
	}
}

func TestSeverity_IsValid(t *testing.T) {
	if !SeverityError.IsValid() {
		t.Error("SeverityError should be valid")
	}
	if Severity(-1).IsValid() || Severity(3).IsValid() {
		t.Error("values outside the enumeration should be invalid")
	}
}
