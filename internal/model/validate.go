package model

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkValidation is the result of checking a form's link fields. Every
// invalid side-link index is listed so callers can mark each offending
// field, not just the first.
type LinkValidation struct {
	Errors             []string
	InvalidMain        bool
	InvalidSideIndexes []int
}

// Valid reports whether no link problems were found.
func (v LinkValidation) Valid() bool {
	return len(v.Errors) == 0
}

// IsHTTPURL reports whether s parses as an absolute http or https URL.
func IsHTTPURL(s string) bool {
	if s == "" {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// ValidateProjectLinks checks the primary link and every non-empty side
// link. Empty links are valid; the link fields are optional.
func ValidateProjectLinks(data FormData) LinkValidation {
	var v LinkValidation
	main := strings.TrimSpace(data.Link)
	if main != "" && !IsHTTPURL(main) {
		v.Errors = append(v.Errors, "Main link must be a valid http(s) URL")
		v.InvalidMain = true
	}
	for i, entry := range data.SideLinks {
		u := strings.TrimSpace(entry.URL)
		if u == "" {
			continue
		}
		if !IsHTTPURL(u) {
			v.Errors = append(v.Errors, fmt.Sprintf("Sub link #%d must be a valid http(s) URL", i+1))
			v.InvalidSideIndexes = append(v.InvalidSideIndexes, i)
		}
	}
	return v
}

// normalizeLinkForDedup reduces a URL to lower-cased scheme://host+path
// with trailing slashes stripped, so "https://x.com/a" and
// "https://x.com/a/" compare equal and query/fragment noise is ignored.
// Unparsable values fall back to plain lower-casing.
func normalizeLinkForDedup(link string) string {
	if link == "" {
		return ""
	}
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return strings.ToLower(link)
	}
	path := strings.TrimRight(parsed.Path, "/")
	return strings.ToLower(parsed.Scheme + "://" + parsed.Host + path)
}

// HasProjectDuplicate reports whether the candidate form data collides
// with an existing record (excluding itself by id) on name, non-empty
// code, or normalized link. This is a heuristic "possible duplicate"
// signal; callers decide whether to block or warn.
func HasProjectDuplicate(projects []Project, data FormData) bool {
	name := strings.TrimSpace(data.Name)
	code := strings.ToUpper(strings.TrimSpace(data.Code))
	link := normalizeLinkForDedup(strings.TrimSpace(data.Link))
	for _, p := range projects {
		if data.ID != 0 && p.ID == data.ID {
			continue
		}
		if p.Name != "" && strings.EqualFold(p.Name, name) {
			return true
		}
		if code != "" && p.Code != "" && strings.ToUpper(p.Code) == code {
			return true
		}
		if link != "" && normalizeLinkForDedup(p.Link) == link {
			return true
		}
	}
	return false
}
