package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bitzorro/relstring/internal/match"
)

// animeGroupRe matches an unparsed leading "[Group]" or "[Group.Tag]"
// bracket, with surrounding separators.
var animeGroupRe = regexp.MustCompile(`^\W*\[(\w+(?:\.\w+)?)\]\W*$`)

// FixAnimeReleaseGroup takes the bracketed prefix of a fansub-style
// name as the release group, replacing whatever group candidate the
// scan guessed further right. Skipped for regular shows, where a
// leading bracket is usually junk.
type FixAnimeReleaseGroup struct{}

func (FixAnimeReleaseGroup) Name() string { return "FixAnimeReleaseGroup" }

type animeGroupTrigger struct {
	start, end int
	value      string
}

func (FixAnimeReleaseGroup) When(ms *match.Matches, ctx *match.Context) any {
	if ctx.ShowType() == match.ShowTypeRegular {
		return nil
	}
	title := ms.FirstNamed("title")
	if title == nil || ms.Previous(title, match.Public) != nil {
		return nil
	}
	holes := ms.Holes(0, title.Start)
	if len(holes) != 1 {
		return nil
	}
	loc := animeGroupRe.FindStringSubmatchIndex(holes[0].Raw)
	if loc == nil {
		return nil
	}
	value := holes[0].Raw[loc[2]:loc[3]]
	if animeGroupBlacklist[strings.ToLower(value)] {
		return nil
	}
	return &animeGroupTrigger{
		start: holes[0].Start + loc[2],
		end:   holes[0].Start + loc[3],
		value: value,
	}
}

func (FixAnimeReleaseGroup) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*animeGroupTrigger)
	remove := ms.Named("release_group")
	add := []*match.Match{{
		Name:  "release_group",
		Start: t.start,
		End:   t.end,
		Raw:   t.value,
		Value: t.value,
		Tags:  []string{tagAnime},
	}}
	return remove, add
}

// AnimeWithSeasonAbsoluteEpisodeNumbers handles fansub names that keep
// a season marker inside the show name, like "Show S2 - 19". The
// marker folds into the title and the numeric episode title becomes
// the absolute episode.
type AnimeWithSeasonAbsoluteEpisodeNumbers struct{}

func (AnimeWithSeasonAbsoluteEpisodeNumbers) Name() string {
	return "AnimeWithSeasonAbsoluteEpisodeNumbers"
}

type animeSeasonTrigger struct {
	title, season, episodeTitle *match.Match
}

func (AnimeWithSeasonAbsoluteEpisodeNumbers) When(ms *match.Matches, ctx *match.Context) any {
	if ctx.ShowType() == match.ShowTypeRegular {
		return nil
	}
	seasons := ms.Named("season", match.Public)
	if len(seasons) != 1 {
		return nil
	}
	season := seasons[0]
	if season.Parent == nil || !season.Parent.Private {
		return nil
	}
	prev := ms.Previous(season, match.Public)
	if prev == nil || prev.Name != "title" {
		return nil
	}
	next := ms.Next(season, match.Public)
	if next == nil || next.Name != "episode_title" || !allDigits(next.Str()) {
		return nil
	}
	return &animeSeasonTrigger{title: prev, season: season, episodeTitle: next}
}

func (AnimeWithSeasonAbsoluteEpisodeNumbers) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*animeSeasonTrigger)
	remove := []*match.Match{t.title, t.season, t.episodeTitle}
	remove = append(remove, ms.Named("extended_title")...)

	marker := t.season.Parent
	title := t.title.Copy()
	title.End = marker.End
	title.Raw = ms.Input()[title.Start:title.End]
	title.Value = t.title.Str() + " " + marker.Raw

	abs := t.episodeTitle.Copy()
	abs.Name = "absolute_episode"
	abs.Value, _ = strconv.Atoi(t.episodeTitle.Str())
	return remove, []*match.Match{title, abs}
}

// AnimeAbsoluteEpisodeNumbers glues a weak season/episode digit split
// back into one absolute episode: 102 stops being 1x02 once the input
// looks like anime.
type AnimeAbsoluteEpisodeNumbers struct{}

func (AnimeAbsoluteEpisodeNumbers) Name() string { return "AnimeAbsoluteEpisodeNumbers" }

type animeAbsoluteTrigger struct {
	season, episode *match.Match
}

func (AnimeAbsoluteEpisodeNumbers) When(ms *match.Matches, ctx *match.Context) any {
	if ctx.ShowType() == match.ShowTypeRegular {
		return nil
	}
	if ctx.ShowType() != match.ShowTypeAnime && len(ms.Tagged(tagAnime)) == 0 {
		return nil
	}
	seasons := ms.Tagged(tagWeakDuplicate, match.Named("season"))
	episodes := ms.Tagged(tagWeakDuplicate, match.Named("episode"))
	if len(seasons) == 0 || len(episodes) == 0 {
		return nil
	}
	if seasons[0].End != episodes[0].Start {
		return nil
	}
	return &animeAbsoluteTrigger{season: seasons[0], episode: episodes[0]}
}

func (AnimeAbsoluteEpisodeNumbers) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*animeAbsoluteTrigger)
	value, _ := strconv.Atoi(t.season.Raw + t.episode.Raw)
	abs := &match.Match{
		Name:  "absolute_episode",
		Start: t.season.Start,
		End:   t.episode.End,
		Raw:   ms.Input()[t.season.Start:t.episode.End],
		Value: value,
		Tags:  []string{tagAnime},
	}
	return []*match.Match{t.season, t.episode}, []*match.Match{abs}
}

// AbsoluteEpisodeNumbers renames plain episodes to absolute ones for
// non-regular input with no season evidence. An explicit episode
// marker word right before the number (E07, ep.7) keeps the numbering
// relative, and an episode count ("1 of 8") keeps the whole rule out.
type AbsoluteEpisodeNumbers struct{}

func (AbsoluteEpisodeNumbers) Name() string { return "AbsoluteEpisodeNumbers" }

func (AbsoluteEpisodeNumbers) When(ms *match.Matches, ctx *match.Context) any {
	if ctx.ShowType() == match.ShowTypeRegular {
		return nil
	}
	if len(ms.Named("season", match.Public)) > 0 || len(ms.Named("episode_count")) > 0 {
		return nil
	}
	episodes := ms.Named("episode", match.Public)
	if len(episodes) == 0 {
		return nil
	}
	for _, ep := range episodes {
		prev := ms.Previous(ep, match.Public)
		if prev == nil || prev.Name == "episode" {
			continue
		}
		holes := ms.Holes(prev.End, ep.Start)
		if len(holes) == 0 {
			continue
		}
		word := strings.ToLower(nonWordRe.ReplaceAllString(holes[0].Raw, ""))
		if episodeMarkerWords[word] {
			return nil
		}
	}
	return episodes
}

func (AbsoluteEpisodeNumbers) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	episodes := trigger.([]*match.Match)
	var add []*match.Match
	for _, ep := range episodes {
		abs := ep.Copy()
		abs.Name = "absolute_episode"
		add = append(add, abs)
	}
	return episodes, add
}

var nonWordRe = regexp.MustCompile(`\W+`)
