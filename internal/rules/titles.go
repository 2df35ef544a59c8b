package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bitzorro/relstring/internal/match"
)

var trailingRangeRe = regexp.MustCompile(`(\d{3,4})-(\d{3,4})[ ._-]*$`)

// FixInvalidTitleOrAlternativeTitle peels an absolute episode range
// off the end of a title, "Show Name 101-104" style, emitting one
// absolute episode per value in the range. Only fires when the name
// shows other episode evidence, so a show legitimately named with a
// number range survives.
type FixInvalidTitleOrAlternativeTitle struct{}

func (FixInvalidTitleOrAlternativeTitle) Name() string { return "FixInvalidTitleOrAlternativeTitle" }

type titleRangeTrigger struct {
	title       *match.Match
	loc         []int
	first, last int
}

func (FixInvalidTitleOrAlternativeTitle) When(ms *match.Matches, ctx *match.Context) any {
	if len(ms.Named("episode", match.Public)) == 0 {
		return nil
	}
	for _, name := range []string{"title", "alternative_title"} {
		for _, m := range ms.Named(name) {
			loc := trailingRangeRe.FindStringSubmatchIndex(m.Raw)
			if loc == nil {
				continue
			}
			first, _ := strconv.Atoi(m.Raw[loc[2]:loc[3]])
			last, _ := strconv.Atoi(m.Raw[loc[4]:loc[5]])
			if last <= first || last-first >= 100 {
				continue
			}
			return &titleRangeTrigger{title: m, loc: loc, first: first, last: last}
		}
	}
	return nil
}

func (FixInvalidTitleOrAlternativeTitle) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*titleRangeTrigger)
	var add []*match.Match

	rest := strings.Trim(t.title.Raw[:t.loc[0]], " ._-")
	if rest != "" {
		title := t.title.Copy()
		title.End = t.title.Start + len(rest)
		title.Raw = rest
		title.Value = cleanValue(rest)
		add = append(add, title)
	}

	for v := t.first; v <= t.last; v++ {
		start, end := t.title.Start+t.loc[2], t.title.Start+t.loc[5]
		switch v {
		case t.first:
			end = t.title.Start + t.loc[3]
		case t.last:
			start = t.title.Start + t.loc[4]
		}
		add = append(add, &match.Match{
			Name:  "absolute_episode",
			Start: start,
			End:   end,
			Raw:   ms.Input()[start:end],
			Value: v,
		})
	}
	return []*match.Match{t.title}, add
}

// FixWrongTitleDueToFilmTitle untangles the three title/film_title
// collisions: a group name swallowed as title plus a film number, a
// placeholder word sitting where the title should be, and a missing
// title with a usable film_title.
type FixWrongTitleDueToFilmTitle struct{}

func (FixWrongTitleDueToFilmTitle) Name() string { return "FixWrongTitleDueToFilmTitle" }

type filmTitleTrigger struct {
	kind             string
	title, filmTitle *match.Match
	film             *match.Match
}

func (FixWrongTitleDueToFilmTitle) When(ms *match.Matches, ctx *match.Context) any {
	film := ms.FirstNamed("film")
	filmTitle := ms.FirstNamed("film_title")
	title := ms.FirstNamed("title")
	if filmTitle == nil {
		return nil
	}
	if title != nil && film != nil && title.End <= film.Start {
		holes := ms.Holes(title.End, film.Start)
		if len(holes) == 1 && strings.ToLower(strings.Trim(holes[0].Raw, " ._-")) == "f" {
			return &filmTitleTrigger{kind: "fuse", title: title, filmTitle: filmTitle, film: film}
		}
	}
	if title != nil && titlePlaceholders[lowerValue(title)] {
		return &filmTitleTrigger{kind: "replace", title: title, filmTitle: filmTitle}
	}
	if title == nil && !allDigits(filmTitle.Str()) {
		return &filmTitleTrigger{kind: "promote", filmTitle: filmTitle}
	}
	return nil
}

func (FixWrongTitleDueToFilmTitle) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*filmTitleTrigger)
	title := t.filmTitle.Copy()
	title.Name = "title"

	switch t.kind {
	case "fuse":
		raw := ms.Input()[t.title.Start:t.film.End]
		group := &match.Match{
			Name:  "release_group",
			Start: t.title.Start,
			End:   t.film.End,
			Raw:   raw,
			Value: raw,
		}
		remove := append(ms.Named("release_group"), t.title, t.film, t.filmTitle)
		return remove, []*match.Match{group, title}
	case "replace":
		return []*match.Match{t.title, t.filmTitle}, []*match.Match{title}
	default:
		return []*match.Match{t.filmTitle}, []*match.Match{title}
	}
}

// ExpectedTitleDots restores spaces in titles matched from the
// expected list via a pattern; verbatim list members keep their dots
// (11.22.63 stays 11.22.63).
type ExpectedTitleDots struct{}

func (ExpectedTitleDots) Name() string { return "ExpectedTitleDots" }

func (ExpectedTitleDots) When(ms *match.Matches, ctx *match.Context) any {
	var stale []*match.Match
	for _, m := range ms.Tagged(tagExpected, match.Named("title")) {
		if ctx.IsLiteralExpectedTitle(m.Str()) {
			continue
		}
		if strings.ContainsAny(m.Str(), "._") {
			stale = append(stale, m)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return stale
}

func (ExpectedTitleDots) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	stale := trigger.([]*match.Match)
	var add []*match.Match
	for _, m := range stale {
		title := m.Copy()
		title.Value = cleanValue(m.Str())
		add = append(add, title)
	}
	return stale, add
}

// CreateExtendedTitleWithAlternativeTitle joins the title and its
// alternative titles into one extended title, keeping the original
// separators readable. Season words never join, and a language match
// blocks the join unless the release is anime-tagged (fansubs chain
// title fragments, dubbed releases do not).
type CreateExtendedTitleWithAlternativeTitle struct{}

func (CreateExtendedTitleWithAlternativeTitle) Name() string {
	return "CreateExtendedTitleWithAlternativeTitle"
}

type extendedTitleTrigger struct {
	title *match.Match
	alts  []*match.Match
}

func (CreateExtendedTitleWithAlternativeTitle) When(ms *match.Matches, ctx *match.Context) any {
	title := ms.FirstNamed("title")
	if title == nil {
		return nil
	}
	alts := ms.Named("alternative_title")
	if len(alts) == 0 {
		return nil
	}
	for _, alt := range alts {
		if seasonWords[lowerValue(alt)] {
			return nil
		}
	}
	if len(ms.Tagged(tagAnime)) == 0 && len(ms.Named("language")) > 0 {
		return nil
	}
	return &extendedTitleTrigger{title: title, alts: alts}
}

func (CreateExtendedTitleWithAlternativeTitle) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*extendedTitleTrigger)
	value := t.title.Str()
	prevEnd := t.title.End
	for _, alt := range t.alts {
		sep := " "
		if holes := ms.Holes(prevEnd, alt.Start); len(holes) > 0 {
			if strings.Trim(holes[0].Raw, " ._") == "-" {
				sep = " - "
			}
		}
		value += sep + alt.Str()
		prevEnd = alt.End
	}
	last := t.alts[len(t.alts)-1]
	extended := &match.Match{
		Name:  "extended_title",
		Start: t.title.Start,
		End:   last.End,
		Raw:   ms.Input()[t.title.Start:last.End],
		Value: value,
	}
	return nil, []*match.Match{extended}
}

// CreateExtendedTitleWithCountryOrYear folds a country or year right
// after the title into the extended title when real numbering follows,
// so "Show Name US" and "Show Name 2019" keep their qualifier.
type CreateExtendedTitleWithCountryOrYear struct{}

func (CreateExtendedTitleWithCountryOrYear) Name() string {
	return "CreateExtendedTitleWithCountryOrYear"
}

type countryYearTrigger struct {
	title, qualifier *match.Match
}

func (CreateExtendedTitleWithCountryOrYear) When(ms *match.Matches, ctx *match.Context) any {
	if ms.FirstNamed("extended_title") != nil {
		return nil
	}
	title := ms.FirstNamed("title")
	if title == nil {
		return nil
	}
	after := ms.Next(title, match.Public)
	if after == nil || (after.Name != "country" && after.Name != "year") {
		return nil
	}
	following := ms.Next(after, match.Public)
	if following == nil {
		return nil
	}
	switch following.Name {
	case "season", "episode", "date":
		return &countryYearTrigger{title: title, qualifier: after}
	}
	return nil
}

func (CreateExtendedTitleWithCountryOrYear) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*countryYearTrigger)
	extended := &match.Match{
		Name:  "extended_title",
		Start: t.title.Start,
		End:   t.qualifier.End,
		Raw:   ms.Input()[t.title.Start:t.qualifier.End],
		Value: t.title.Str() + " " + nonWordRe.ReplaceAllString(t.qualifier.Raw, ""),
	}
	return nil, []*match.Match{extended}
}

// FixNumericTitle glues a title, a numeric hole and the following
// episode title back into one name: "Show Name 2 The Big Show" is one
// show, not episode 2 of something.
type FixNumericTitle struct{}

func (FixNumericTitle) Name() string { return "FixNumericTitle" }

type numericTitleTrigger struct {
	title, episodeTitle *match.Match
	digits              string
}

func (FixNumericTitle) When(ms *match.Matches, ctx *match.Context) any {
	title := ms.FirstNamed("title")
	if title == nil {
		return nil
	}
	for _, et := range ms.Named("episode_title") {
		if et.Start < title.End {
			continue
		}
		holes := ms.Holes(title.End, et.Start)
		if len(holes) != 1 {
			continue
		}
		digits := strings.Trim(holes[0].Raw, " ._-")
		if !allDigits(digits) {
			continue
		}
		return &numericTitleTrigger{title: title, episodeTitle: et, digits: digits}
	}
	return nil
}

func (FixNumericTitle) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*numericTitleTrigger)
	title := t.title.Copy()
	title.End = t.episodeTitle.End
	title.Raw = ms.Input()[title.Start:title.End]
	title.Value = t.title.Str() + " " + t.digits + " " + t.episodeTitle.Str()
	return []*match.Match{t.title, t.episodeTitle}, []*match.Match{title}
}

// FixMultipleTitles keeps only the first title when several survived.
type FixMultipleTitles struct{}

func (FixMultipleTitles) Name() string { return "FixMultipleTitles" }

func (FixMultipleTitles) When(ms *match.Matches, ctx *match.Context) any {
	titles := ms.Named("title")
	if len(titles) < 2 {
		return nil
	}
	return titles[1:]
}

func (FixMultipleTitles) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	return trigger.([]*match.Match), nil
}

var titleSeparatorRe = regexp.MustCompile(`[._]`)
var titleSpaceRe = regexp.MustCompile(`\s+`)

func cleanValue(raw string) string {
	out := titleSeparatorRe.ReplaceAllString(raw, " ")
	out = titleSpaceRe.ReplaceAllString(out, " ")
	return strings.Trim(out, " -")
}
