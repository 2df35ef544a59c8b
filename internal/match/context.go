package match

import (
	"fmt"
	"slices"
	"strings"
)

// ShowType is the caller's knowledge about the show a release belongs
// to. It steers the numbering rules: anime shows prefer absolute
// episode numbers, regular shows prefer season/episode pairs.
type ShowType int

const (
	ShowTypeUnknown ShowType = iota
	ShowTypeRegular
	ShowTypeAnime
)

func (t ShowType) String() string {
	switch t {
	case ShowTypeRegular:
		return "regular"
	case ShowTypeAnime:
		return "anime"
	default:
		return "unknown"
	}
}

// ParseShowType converts a user-facing string into a ShowType.
func ParseShowType(s string) (ShowType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "auto":
		return ShowTypeUnknown, nil
	case "regular", "series", "normal":
		return ShowTypeRegular, nil
	case "anime":
		return ShowTypeAnime, nil
	default:
		return ShowTypeUnknown, fmt.Errorf("unknown show type %q", s)
	}
}

// Context carries the caller-supplied configuration for a single parse.
// Expected titles and groups are literals unless prefixed with "re:",
// in which case the remainder is a regular expression.
type Context struct {
	ExpectedTitles []string
	ExpectedGroups []string

	showType ShowType
}

// NewContext returns a context with the given show type hint.
func NewContext(showType ShowType) *Context {
	return &Context{showType: showType}
}

// ShowType returns the current show type, hint or inferred.
func (c *Context) ShowType() ShowType {
	return c.showType
}

// InferShowType records a show type deduced from release evidence. The
// first setter wins: a caller hint is never overridden, and neither is
// an earlier inference. It reports whether the value was taken.
func (c *Context) InferShowType(t ShowType) bool {
	if c.showType != ShowTypeUnknown || t == ShowTypeUnknown {
		return false
	}
	c.showType = t
	return true
}

// IsLiteralExpectedTitle reports whether value is a verbatim member of
// the expected title list, "re:" patterns excluded.
func (c *Context) IsLiteralExpectedTitle(value string) bool {
	return slices.ContainsFunc(c.ExpectedTitles, func(e string) bool {
		return !strings.HasPrefix(e, "re:") && strings.EqualFold(e, value)
	})
}
