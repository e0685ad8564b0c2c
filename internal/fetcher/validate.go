package fetcher

import (
	"errors"
	"fmt"
	"regexp"
)

// DefaultMinBodyLength is the shortest body accepted as real content.
// Relay error pages and empty shells fall below it.
const DefaultMinBodyLength = 1024

var (
	// ErrBodyTooShort rejects bodies below the minimum length.
	ErrBodyTooShort = errors.New("body too short")

	// ErrLoginWall rejects authentication walls without public metadata.
	ErrLoginWall = errors.New("login wall without public metadata")
)

var (
	loginWallRe = regexp.MustCompile(`(?i)id="login_form"|"login_form"|action="/login/|/login/\?next=|You must log in|Log in to continue|Log into Facebook|/checkpoint/`)

	// Some walled pages still embed Open Graph tags for crawlers.
	publicMetaRe = regexp.MustCompile(`(?i)<meta[^>]+(?:property|name)\s*=\s*["']og:(?:video|image|title)(?::[a-z_]+)?["']`)
)

// Validator decides whether a retrieved body is worth extracting from.
type Validator struct {
	MinBodyLength int
}

// NewValidator returns a validator with the given threshold, or the default
// when minLen is not positive.
func NewValidator(minLen int) Validator {
	if minLen <= 0 {
		minLen = DefaultMinBodyLength
	}
	return Validator{MinBodyLength: minLen}
}

// Validate returns nil when body may be passed to the extraction pipeline.
func (v Validator) Validate(body string) error {
	if len(body) < v.MinBodyLength {
		return fmt.Errorf("%w: %d < %d bytes", ErrBodyTooShort, len(body), v.MinBodyLength)
	}
	if loginWallRe.MatchString(body) && !publicMetaRe.MatchString(body) {
		return ErrLoginWall
	}
	return nil
}
