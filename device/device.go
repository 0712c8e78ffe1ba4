// Package device classifies the rendering target into a coarse mobile or
// desktop profile used to scale particle counts and rotation cost.
package device

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// DefaultBreakpoint is the viewport width below which a device is mobile.
const DefaultBreakpoint = 768

// DefaultSignatures are user-agent fragments that identify mobile browsers.
var DefaultSignatures = []string{
	"android", "webos", "iphone", "ipad", "ipod",
	"blackberry", "iemobile", "opera mini", "mobile",
}

// Profile is the derived device classification. It is never persisted.
type Profile struct {
	IsMobile bool
	Width    int
	Height   int
}

// LogValue implements slog.LogValuer for structured logging.
func (p Profile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("mobile", p.IsMobile),
		slog.Int("width", p.Width),
		slog.Int("height", p.Height),
	)
}

// Classifier maps viewport width and user agent to a Profile.
type Classifier struct {
	Breakpoint int
	signatures []*regexp.Regexp
}

// NewClassifier compiles the given signatures (case-insensitive).
func NewClassifier(breakpoint int, signatures []string) (*Classifier, error) {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	c := &Classifier{Breakpoint: breakpoint}
	for _, sig := range signatures {
		re, err := regexp.Compile("(?i)" + sig)
		if err != nil {
			return nil, fmt.Errorf("compiling mobile signature %q: %w", sig, err)
		}
		c.signatures = append(c.signatures, re)
	}
	return c, nil
}

// Classify returns the profile for a viewport width and user agent.
// An empty user agent counts as non-mobile.
func (c *Classifier) Classify(width int, userAgent string) Profile {
	return Profile{
		IsMobile: width < c.Breakpoint || c.matchesUA(userAgent),
		Width:    width,
	}
}

func (c *Classifier) matchesUA(ua string) bool {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return false
	}
	for _, re := range c.signatures {
		if re.MatchString(ua) {
			return true
		}
	}
	return false
}
