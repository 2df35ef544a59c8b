package rules

import (
	"regexp"

	"github.com/bitzorro/relstring/internal/match"
)

// cleanupSteps is the ordered scrub cascade for release-group
// candidates. Each step removes one family of junk the group heuristics
// drag along; the cascade stops as soon as the value goes empty.
// Applied to an already clean name, every step is a no-op.
var cleanupSteps = []struct {
	re   *regexp.Regexp
	repl string
}{
	// trailing bracketed junk: GROUP[TRASH], GROUP(extra)
	{regexp.MustCompile(`(?i)\W*[\[({].+[\])}]\W*$`), ""},
	// file sizes: 200MB, 1.1TB
	{regexp.MustCompile(`(?i)\W*\b\d+(?:\.\d+)?\W?[mgt]b\b\W*`), ""},
	// rar volume markers: .vol15+16
	{regexp.MustCompile(`(?i)\.vol\d+\+\d+`), ""},
	// re-encode markers
	{regexp.MustCompile(`(?i)\W*\bre-?enc(?:oded)?\b\W*`), ""},
	// two-letter-language sub markers: NLSubs, PTSub
	{regexp.MustCompile(`(?i)\W*\b[a-z]{2}[ ._-]?subs?\b\W*`), ""},
	// file extensions and trailing part numbers: .rar, .gz, .1
	{regexp.MustCompile(`(?i)\.(?:rar|gz|\d+)$`), ""},
	// lowercase tracker suffix glued onto the group: BS666.rartv
	{regexp.MustCompile(`([A-Za-z0-9]{3})\.[a-z]+$`), "$1"},
	// fansub markers
	{regexp.MustCompile(`(?i)\W*\bfan[ ._-]?subs?\b\W*`), ""},
	// scene noise words
	{regexp.MustCompile(`(?i)\W*\b(?:internal|obfuscated|vtv|sd|avc|dirfix|dual)\b\W*`), ""},
	// leading and trailing separators
	{regexp.MustCompile(`^\W+`), ""},
	{regexp.MustCompile(`\W+$`), ""},
}

// CleanGroupName runs the scrub cascade over a raw group candidate and
// returns the cleaned name, possibly empty.
func CleanGroupName(value string) string {
	for _, step := range cleanupSteps {
		value = step.re.ReplaceAllString(value, step.repl)
		if value == "" {
			return ""
		}
	}
	return value
}

// ReleaseGroupPostProcessor scrubs every release-group candidate and
// drops the match entirely when nothing survives the cascade.
type ReleaseGroupPostProcessor struct{}

func (ReleaseGroupPostProcessor) Name() string { return "ReleaseGroupPostProcessor" }

func (ReleaseGroupPostProcessor) When(ms *match.Matches, ctx *match.Context) any {
	groups := ms.Named("release_group")
	if len(groups) == 0 {
		return nil
	}
	return groups
}

func (ReleaseGroupPostProcessor) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	var remove, add []*match.Match
	for _, g := range trigger.([]*match.Match) {
		cleaned := CleanGroupName(g.Str())
		if cleaned == g.Str() {
			continue
		}
		remove = append(remove, g)
		if cleaned == "" {
			continue
		}
		replacement := g.Copy()
		replacement.Value = cleaned
		add = append(add, replacement)
	}
	if len(remove) == 0 && len(add) == 0 {
		return nil, nil
	}
	return remove, add
}
