package config

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/karatsuba/internal/errors"
)

var memoryUnits = []struct {
	suffix string
	factor uint64
}{
	{"TIB", 1 << 40}, {"GIB", 1 << 30}, {"MIB", 1 << 20}, {"KIB", 1 << 10},
	{"TB", 1 << 40}, {"GB", 1 << 30}, {"MB", 1 << 20}, {"KB", 1 << 10},
	{"T", 1 << 40}, {"G", 1 << 30}, {"M", 1 << 20}, {"K", 1 << 10},
	{"B", 1},
}

// ParseMemoryLimit parses a size such as "512M", "8GiB" or "1048576" into
// bytes. Units are binary and case-insensitive; a bare number is bytes.
// Failures are apperrors.ValidationError values.
func ParseMemoryLimit(s string) (uint64, error) {
	invalid := func(format string, a ...any) error {
		return apperrors.ValidationError{Field: "memory-limit", Message: fmt.Sprintf(format, a...)}
	}
	text := strings.ToUpper(strings.TrimSpace(s))
	if text == "" {
		return 0, invalid("empty size")
	}

	factor := uint64(1)
	for _, u := range memoryUnits {
		if strings.HasSuffix(text, u.suffix) {
			text = strings.TrimSpace(strings.TrimSuffix(text, u.suffix))
			factor = u.factor
			break
		}
	}

	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, invalid("%q is not a size", s)
	}
	if n == 0 {
		return 0, invalid("must be positive")
	}
	if n > ^uint64(0)/factor {
		return 0, invalid("%q overflows", s)
	}
	return n * factor, nil
}
