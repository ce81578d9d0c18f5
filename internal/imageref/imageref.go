// Package imageref validates externally referenced image URLs before they
// are shown. Only http and https URLs and inline data:image URIs are
// accepted; everything else is reported as blocked and never rendered.
package imageref

import (
	"net/url"
	"strings"

	"bwcalc/internal/logging"

	"go.uber.org/zap"
)

const (
	// BlockedLabel replaces the URL when it is rejected.
	BlockedLabel = "[blocked: invalid or unsafe URL]"
	// BlockedAlt is the alternative text of a blocked image.
	BlockedAlt = "Blocked image URL"

	dataImagePrefix = "data:image/"
)

// Allowed reports whether raw may be loaded as an image.
func Allowed(raw string) bool {
	if strings.HasPrefix(raw, dataImagePrefix) {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	}
	return false
}

// Panel describes how the image area should be rendered.
type Panel struct {
	Visible bool   // false when no URL was given
	Allowed bool   // false when the URL was blocked
	URL     string // the URL as given
	Label   string // caption: the URL, or BlockedLabel
	Alt     string // alternative text
}

// Resolve validates raw and returns the panel to render for it.
func Resolve(raw string) Panel {
	if raw == "" {
		return Panel{}
	}
	if !Allowed(raw) {
		logging.Get(logging.CategoryImage).Info("blocked image url", zap.String("url", raw))
		logging.Audit(logging.AuditImageBlocked, zap.String("url", raw))
		return Panel{
			Visible: true,
			URL:     raw,
			Label:   BlockedLabel,
			Alt:     BlockedAlt,
		}
	}
	return Panel{
		Visible: true,
		Allowed: true,
		URL:     raw,
		Label:   raw,
		Alt:     "External image",
	}
}

// MediaType returns the declared media type of an allowed data: URI, such as
// "image/png". It is empty for http(s) URLs and blocked panels.
func (p Panel) MediaType() string {
	if !p.Allowed || !strings.HasPrefix(p.URL, dataImagePrefix) {
		return ""
	}
	rest := strings.TrimPrefix(p.URL, "data:")
	end := strings.IndexAny(rest, ";,")
	if end < 0 {
		return rest
	}
	return rest[:end]
}
