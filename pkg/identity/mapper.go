package identity

import (
	"regexp"
	"strings"
)

// DefaultDomain is the institutional email domain appended to handles.
const DefaultDomain = "colorado.edu"

// emailRegex performs a basic syntax check on the derived address.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var handleSeparators = regexp.MustCompile(`[,\s]+`)

// Mapper maps short institutional account handles to email addresses.
//
// The mapping is a fixed-suffix concatenation: handle + "@" + domain. Callers
// are expected to pre-trim handles; no case or whitespace normalization is
// performed here.
type Mapper struct {
	domain string
}

// NewMapper creates a Mapper for the given email domain. An empty domain
// falls back to DefaultDomain.
func NewMapper(domain string) *Mapper {
	if domain == "" {
		domain = DefaultDomain
	}
	return &Mapper{domain: domain}
}

// Domain returns the configured institutional email domain.
func (m *Mapper) Domain() string {
	return m.domain
}

// ToEmail derives the institutional email address for a handle.
func (m *Mapper) ToEmail(handle string) string {
	return handle + "@" + m.domain
}

// IsValidHandle reports whether a handle is acceptable for inviting.
//
// This is a proxy validation: the handle is valid iff the derived email
// address is syntactically valid. An empty handle derives "@domain" and is
// rejected, as is any handle already containing "@" or whitespace.
func (m *Mapper) IsValidHandle(handle string) bool {
	return emailRegex.MatchString(m.ToEmail(handle))
}

// SplitHandles splits a comma or whitespace separated handle list into
// individual handles, dropping empty elements.
func SplitHandles(raw string) []string {
	parts := handleSeparators.Split(raw, -1)
	handles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			handles = append(handles, p)
		}
	}
	return handles
}
