package rules

import (
	"strings"

	"github.com/bitzorro/relstring/internal/match"
)

// FixScreenSizeConflict drops season/episode numbers carved out of a
// resolution: a bare 720 is a screen size first, 7x20 never.
type FixScreenSizeConflict struct{}

func (FixScreenSizeConflict) Name() string { return "FixScreenSizeConflict" }

func (FixScreenSizeConflict) When(ms *match.Matches, ctx *match.Context) any {
	var conflicting []*match.Match
	for _, size := range ms.Named("screen_size") {
		conflicting = append(conflicting,
			ms.At(size, match.Public, match.Named("season", "episode"))...)
	}
	if len(conflicting) == 0 {
		return nil
	}
	return conflicting
}

func (FixScreenSizeConflict) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	return trigger.([]*match.Match), nil
}

// PartsAsEpisodeNumbers promotes part numbers to episodes when the
// name carries no other numbering, so "Show.Part.3" lands on episode 3.
type PartsAsEpisodeNumbers struct{}

func (PartsAsEpisodeNumbers) Name() string { return "PartsAsEpisodeNumbers" }

func (PartsAsEpisodeNumbers) When(ms *match.Matches, ctx *match.Context) any {
	parts := ms.Named("part", match.Public)
	if len(parts) == 0 {
		return nil
	}
	if len(ms.Named("season", match.Public)) > 0 || len(ms.Named("episode", match.Public)) > 0 {
		return nil
	}
	return parts
}

func (PartsAsEpisodeNumbers) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	parts := trigger.([]*match.Match)
	var add []*match.Match
	for _, p := range parts {
		ep := p.Copy()
		ep.Name = "episode"
		add = append(add, ep)
	}
	return parts, add
}

var episodeRangeSeparators = map[string]bool{"-": true, "-e": true}

// FixEpisodeRangeDetection expands "E01-E04" (or "e01-04") into every
// episode in between, with the same sanity bounds as the season range
// rule. A single episode followed by an episode count over a range
// separator absorbs the count as the upper bound.
type FixEpisodeRangeDetection struct{}

func (FixEpisodeRangeDetection) Name() string { return "FixEpisodeRangeDetection" }

type episodeRangeTrigger struct {
	first *match.Match
	last  int
}

func (FixEpisodeRangeDetection) When(ms *match.Matches, ctx *match.Context) any {
	episodes := ms.Named("episode", match.Public)
	if len(episodes) == 2 {
		first, last := episodes[0], episodes[1]
		gap := last.Int() - first.Int()
		if gap <= 1 || gap >= 100 {
			return nil
		}
		if !separatedByRange(ms, first, last) {
			return nil
		}
		return &episodeRangeTrigger{first: first, last: last.Int() - 1}
	}
	if len(episodes) == 1 {
		counts := ms.Named("episode_count")
		if len(counts) != 1 {
			return nil
		}
		first, count := episodes[0], counts[0]
		gap := count.Int() - first.Int()
		if gap < 1 || gap >= 100 || !separatedByRange(ms, first, count) {
			return nil
		}
		return &episodeRangeTrigger{first: first, last: count.Int()}
	}
	return nil
}

func separatedByRange(ms *match.Matches, a, b *match.Match) bool {
	holes := ms.Holes(a.End, b.Start)
	if len(holes) != 1 {
		return false
	}
	sep := strings.Trim(strings.ToLower(holes[0].Raw), " ")
	return episodeRangeSeparators[sep]
}

func (FixEpisodeRangeDetection) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*episodeRangeTrigger)
	var add []*match.Match
	for v := t.first.Int() + 1; v <= t.last; v++ {
		episode := t.first.Copy()
		episode.Value = v
		add = append(add, episode)
	}
	return nil, add
}
