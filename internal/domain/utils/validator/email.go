package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
)

// StudentEmail normalizes and validates a student email against the allowed
// university domain. The local part must be a 12-digit student number.
func StudentEmail(email, allowedDomain string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", fmt.Errorf("%w: email is required", errorz.ErrInvalidEmail)
	}

	domain := strings.ToLower(strings.TrimSpace(allowedDomain))
	re := regexp.MustCompile(`^\d{12}@` + regexp.QuoteMeta(domain) + `$`)
	if !re.MatchString(normalized) {
		return "", fmt.Errorf("%w: expected a 12-digit student number followed by @%s", errorz.ErrInvalidEmail, domain)
	}

	return normalized, nil
}
