package submission

import (
	"regexp"
	"strings"
)

// MinWalletLength is the minimum trimmed wallet length enforced server-side.
// The wallet format itself is chain-agnostic.
const MinWalletLength = 20

var (
	nameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)

	// linkRe accepts both scheme-qualified and scheme-less URLs. The
	// gateway separately requires an http:// or https:// prefix; the two
	// checks are intentionally not identical and must both stay in place.
	linkRe = regexp.MustCompile(`(?i)^(https?://)?([\da-zA-Z.-]+)\.([a-zA-Z.]{2,})([/\w .\-?=&%#]*)*/?$`)
)

// FieldError names the first offending field of an invalid candidate.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Validate checks a candidate in fixed field order and returns the first
// failing rule only: name, link, content tags, wallet.
func Validate(c Candidate) error {
	name := strings.TrimSpace(c.SubmitterName)
	if name == "" || !nameRe.MatchString(name) {
		return &FieldError{Field: "name", Message: "Name must contain only letters and spaces."}
	}

	link := strings.TrimSpace(c.Link)
	if !linkRe.MatchString(link) {
		return &FieldError{Field: "link", Message: "Please enter a valid URL for the link."}
	}

	if len(c.ContentTags) == 0 {
		return &FieldError{Field: "contentTags", Message: "Please select at least one content tag."}
	}
	for _, tag := range c.ContentTags {
		if !IsKnownTag(tag) {
			return &FieldError{Field: "contentTags", Message: "Please select at least one content tag."}
		}
	}

	if strings.TrimSpace(c.WalletAddress) == "" {
		return &FieldError{Field: "walletAddress", Message: "Wallet address is required."}
	}

	return nil
}
