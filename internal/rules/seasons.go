package rules

import (
	"strings"

	"github.com/bitzorro/relstring/internal/match"
)

// FixSeasonNotDetected renames a lone episode to a season when the
// text right before it is a season word that ended up as a title
// fragment, the "Show - Season 3" shape.
type FixSeasonNotDetected struct{}

func (FixSeasonNotDetected) Name() string { return "FixSeasonNotDetected" }

type seasonNotDetectedTrigger struct {
	word, episode *match.Match
}

func (FixSeasonNotDetected) When(ms *match.Matches, ctx *match.Context) any {
	if len(ms.Named("season", match.Public)) > 0 {
		return nil
	}
	episodes := ms.Named("episode", match.Public)
	if len(episodes) != 1 {
		return nil
	}
	prev := ms.Previous(episodes[0], match.Public)
	if prev == nil || (prev.Name != "alternative_title" && prev.Name != "episode_title") {
		return nil
	}
	if !seasonWords[lowerValue(prev)] {
		return nil
	}
	return &seasonNotDetectedTrigger{word: prev, episode: episodes[0]}
}

func (FixSeasonNotDetected) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*seasonNotDetectedTrigger)
	season := t.episode.Copy()
	season.Name = "season"
	return []*match.Match{t.word, t.episode}, []*match.Match{season}
}

// FixWrongSeasonAndReleaseGroup undoes season numbers conjured out of
// group names like BS666: the literal text around the second season
// match is reassembled and, when it spells a known problematic word,
// restored as the release group.
type FixWrongSeasonAndReleaseGroup struct{}

func (FixWrongSeasonAndReleaseGroup) Name() string { return "FixWrongSeasonAndReleaseGroup" }

type wrongSeasonTrigger struct {
	season, previous *match.Match
	group            string
}

func (FixWrongSeasonAndReleaseGroup) When(ms *match.Matches, ctx *match.Context) any {
	seasons := ms.Named("season", match.Public)
	if len(seasons) != 2 {
		return nil
	}
	last := seasons[1]
	prev := ms.Previous(last, match.Public)
	if prev == nil {
		return nil
	}
	holes := ms.Holes(prev.End, last.Start)
	if len(holes) != 1 {
		return nil
	}
	prefix := ""
	if prev.Name == "release_group" {
		prefix = prev.Str()
	}
	candidate := nonWordRe.ReplaceAllString(prefix+holes[0].Raw+last.Raw, "")
	lower := strings.ToLower(candidate)
	for _, word := range problematicWords {
		if strings.Contains(lower, word) {
			return &wrongSeasonTrigger{season: last, previous: prev, group: candidate}
		}
	}
	return nil
}

func (FixWrongSeasonAndReleaseGroup) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*wrongSeasonTrigger)
	remove := []*match.Match{t.season}
	start := t.season.Start
	if t.previous.Name == "release_group" {
		remove = append(remove, t.previous)
		start = t.previous.Start
	}
	group := &match.Match{
		Name:  "release_group",
		Start: start,
		End:   t.season.End,
		Raw:   ms.Input()[start:t.season.End],
		Value: t.group,
	}
	return remove, []*match.Match{group}
}

// FixSeasonEpisodeDetection repairs S02E14 read as two seasons: when
// two seasons and no episode precede an h264/h265 codec, the second
// season is really the episode.
type FixSeasonEpisodeDetection struct{}

func (FixSeasonEpisodeDetection) Name() string { return "FixSeasonEpisodeDetection" }

func (FixSeasonEpisodeDetection) When(ms *match.Matches, ctx *match.Context) any {
	seasons := ms.Named("season", match.Public)
	if len(seasons) != 2 || len(ms.Named("episode", match.Public)) > 0 {
		return nil
	}
	next := ms.Next(seasons[1], match.Public)
	if next == nil || next.Name != "video_codec" {
		return nil
	}
	if v := next.Str(); v != "h264" && v != "h265" {
		return nil
	}
	return seasons[1]
}

func (FixSeasonEpisodeDetection) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	season := trigger.(*match.Match)
	episode := season.Copy()
	episode.Name = "episode"
	return []*match.Match{season}, []*match.Match{episode}
}

// seasonRangeSeparators are the literal hole texts accepted between
// the two ends of a season range.
var seasonRangeSeparators = map[string]bool{
	"-": true, "~": true, "_-_": true, "-s": true,
	".to.s": true, ".to.": true, "to": true, "to s": true,
}

// FixSeasonRangeDetection expands "s01-s04" into every season in
// between. The gap must be more than one and less than a hundred so a
// typo cannot fan out into absurd season lists.
type FixSeasonRangeDetection struct{}

func (FixSeasonRangeDetection) Name() string { return "FixSeasonRangeDetection" }

type seasonRangeTrigger struct {
	first, last *match.Match
}

func (FixSeasonRangeDetection) When(ms *match.Matches, ctx *match.Context) any {
	seasons := ms.Named("season", match.Public)
	if len(seasons) != 2 {
		return nil
	}
	first, last := seasons[0], seasons[1]
	gap := last.Int() - first.Int()
	if gap <= 1 || gap >= 100 {
		return nil
	}
	holes := ms.Holes(first.End, last.Start)
	if len(holes) != 1 {
		return nil
	}
	sep := strings.Trim(strings.ToLower(holes[0].Raw), " ")
	if !seasonRangeSeparators[sep] {
		return nil
	}
	return &seasonRangeTrigger{first: first, last: last}
}

func (FixSeasonRangeDetection) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*seasonRangeTrigger)
	var add []*match.Match
	for v := t.first.Int() + 1; v < t.last.Int(); v++ {
		season := t.first.Copy()
		season.Value = v
		add = append(add, season)
	}
	var remove []*match.Match
	for _, et := range ms.Named("episode_title") {
		if lowerValue(et) == "to" {
			remove = append(remove, et)
		}
	}
	return remove, add
}
