package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"7", "7"},
		{"132", "132"},
		{"4080", "4,080"},
		{"121932631112635269", "121,932,631,112,635,269"},
		{"-1000", "-1,000"},
		{"-12", "-12"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		keep int
		want string
	}{
		{"short", "12345", 3, "12345"},
		{"exactly two edges", "123456", 3, "123456"},
		{"one hidden", "1234567", 3, "123...(1 digits)...567"},
		{"many hidden", strings.Repeat("8", 2050), 25, strings.Repeat("8", 25) + "...(2,000 digits)..." + strings.Repeat("8", 25)},
		{"keep zero", "1234567", 0, "1234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateDigits(tt.in, tt.keep); got != tt.want {
				t.Errorf("TruncateDigits = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{512 << 20, "512.0 MiB"},
		{8 << 30, "8.0 GiB"},
		{1 << 40, "1.0 TiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{800 * time.Nanosecond, "0µs"},
		{250 * time.Microsecond, "250µs"},
		{999 * time.Millisecond, "999ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90*time.Second + 4*time.Millisecond, "1m30.004s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
