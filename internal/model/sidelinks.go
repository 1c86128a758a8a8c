package model

import (
	"net/url"
	"strings"
)

// NormalizeSideLinks accepts a mixed sequence of entries, each either a
// bare URL string or a {type, url} object decoded as map[string]any, and
// returns the typed sequence. Entries without a URL are dropped.
func NormalizeSideLinks(raw []any) []SideLink {
	out := make([]SideLink, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case map[string]any:
			t := strings.TrimSpace(toString(v["type"]))
			u := strings.TrimSpace(toString(v["url"]))
			if u == "" {
				continue
			}
			out = append(out, SideLink{Type: t, URL: u})
		case SideLink:
			if strings.TrimSpace(v.URL) == "" {
				continue
			}
			out = append(out, SideLink{Type: strings.TrimSpace(v.Type), URL: strings.TrimSpace(v.URL)})
		default:
			u := strings.TrimSpace(toString(item))
			if u == "" {
				continue
			}
			out = append(out, SideLink{URL: u})
		}
	}
	return out
}

// RenderableSideLink is a side link prepared for display: a validated
// href, a label (type label, falling back to the hostname), and a
// normalized kind keyed by type or host.
type RenderableSideLink struct {
	Type  string
	Href  string
	Label string
	Kind  string
}

// SideLinkKind maps a type key or hostname to a normalized kind key.
func SideLinkKind(linkType, host string) string {
	t := strings.ToLower(linkType)
	switch {
	case t == "x" || t == "twitter" || strings.Contains(host, "x.com") || strings.Contains(host, "twitter.com"):
		return "x"
	case t == "discord" || strings.Contains(host, "discord"):
		return "discord"
	case t == "telegram" || strings.Contains(host, "t.me") || strings.Contains(host, "telegram"):
		return "telegram"
	case t == "github" || strings.Contains(host, "github.com"):
		return "github"
	default:
		return "link"
	}
}

// RenderableSideLinks resolves each side link for display. getTypeLabel
// resolves a type key to its display label; pass nil to use the raw key.
// Links that are not valid http(s) URLs are dropped.
func RenderableSideLinks(links []SideLink, getTypeLabel func(string) string) []RenderableSideLink {
	out := make([]RenderableSideLink, 0, len(links))
	for _, entry := range links {
		if !IsHTTPURL(entry.URL) {
			continue
		}
		host := ""
		if parsed, err := url.Parse(entry.URL); err == nil {
			host = strings.TrimPrefix(parsed.Hostname(), "www.")
		}
		label := entry.Type
		if getTypeLabel != nil {
			label = getTypeLabel(entry.Type)
		}
		if label == "" || strings.EqualFold(label, "website") {
			label = host
			if label == "" {
				label = "Link"
			}
		}
		out = append(out, RenderableSideLink{
			Type:  entry.Type,
			Href:  entry.URL,
			Label: label,
			Kind:  SideLinkKind(entry.Type, host),
		})
	}
	return out
}
