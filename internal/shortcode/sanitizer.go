package shortcode

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/apexmd/apex/internal/sanitize"
	"github.com/apexmd/apex/pkg/interfaces"
)

// Sanitizer enforces URL schemes and attribute allowlisting on directive
// output, then delegates the actual markup scrubbing to internal/sanitize
// (bluemonday) rather than the ad-hoc "<script" substring check this
// package used when it targeted CMS page bodies.
type Sanitizer struct {
	allowedSchemes map[string]struct{}
	policy         *sanitize.Policy
}

// NewSanitizer returns a sanitizer allowing http/https URLs.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		allowedSchemes: map[string]struct{}{
			"http":  {},
			"https": {},
			"":      {},
		},
		policy: sanitize.New(),
	}
}

// Sanitize scrubs directive output through Apex's shared bluemonday policy.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	return s.policy.Sanitize(html), nil
}

// ValidateURL ensures the URL has an allowed scheme.
func (s *Sanitizer) ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if _, ok := s.allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return fmt.Errorf("shortcode: url scheme %q not permitted", parsed.Scheme)
	}
	return nil
}

// ValidateAttributes rejects inline event handlers like onload/onerror.
func (s *Sanitizer) ValidateAttributes(attrs map[string]any) error {
	for key := range attrs {
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "on") {
			return fmt.Errorf("shortcode: attribute %q not permitted", key)
		}
	}
	return nil
}

var _ interfaces.ShortcodeSanitizer = (*Sanitizer)(nil)
