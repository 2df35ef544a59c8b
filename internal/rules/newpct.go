package rules

import (
	"regexp"
	"strconv"

	"github.com/bitzorro/relstring/internal/match"
)

// newpctCapRe finds the bracketed Cap numbering Spanish newpct releases
// carry: [Cap.203] or [Cap.203_204], season digits first, two episode
// digits after.
var newpctCapRe = regexp.MustCompile(`(?i)\[cap[. ]?(\d{1,2})(\d{2})(?:[_-](\d{1,2})(\d{2}))?\]`)

// SpanishNewpctReleaseName rebuilds the numbering of newpct-style
// names where a Spanish season word leaked into the title area and the
// real numbering sits in a Cap bracket. These names describe regular
// shows, so the show type is pinned when still open.
type SpanishNewpctReleaseName struct{}

func (SpanishNewpctReleaseName) Name() string { return "SpanishNewpctReleaseName" }

type newpctTrigger struct {
	words []*match.Match
	loc   []int
}

func (SpanishNewpctReleaseName) When(ms *match.Matches, ctx *match.Context) any {
	var words []*match.Match
	for _, name := range []string{"alternative_title", "episode_title"} {
		for _, m := range ms.Named(name) {
			if spanishSeasonWords[lowerValue(m)] {
				words = append(words, m)
			}
		}
	}
	if len(words) == 0 {
		return nil
	}
	loc := newpctCapRe.FindStringSubmatchIndex(ms.Input())
	if loc == nil {
		return nil
	}
	seasons := ms.Named("season", match.Public)
	if len(seasons) == 0 {
		return nil
	}
	capSeason, _ := strconv.Atoi(ms.Input()[loc[2]:loc[3]])
	if seasons[0].Int() != capSeason {
		return nil
	}
	ctx.InferShowType(match.ShowTypeRegular)
	return &newpctTrigger{words: words, loc: loc}
}

func (SpanishNewpctReleaseName) Then(ms *match.Matches, trigger any) ([]*match.Match, []*match.Match) {
	t := trigger.(*newpctTrigger)
	input := ms.Input()

	remove := append([]*match.Match{}, t.words...)
	remove = append(remove, ms.Named("episode", match.Public)...)
	for _, et := range ms.Named("episode_title") {
		if lowerValue(et) == "audio" {
			remove = append(remove, et)
		}
	}

	episode := func(start, end, value int) *match.Match {
		return &match.Match{
			Name: "episode", Start: start, End: end,
			Raw: input[start:end], Value: value,
		}
	}

	first, _ := strconv.Atoi(input[t.loc[4]:t.loc[5]])
	add := []*match.Match{episode(t.loc[4], t.loc[5], first)}
	if t.loc[6] >= 0 {
		season2, _ := strconv.Atoi(input[t.loc[6]:t.loc[7]])
		last, _ := strconv.Atoi(input[t.loc[8]:t.loc[9]])
		capSeason, _ := strconv.Atoi(input[t.loc[2]:t.loc[3]])
		if season2 == capSeason && last > first && last-first < 100 {
			for v := first + 1; v < last; v++ {
				add = append(add, episode(t.loc[0], t.loc[1], v))
			}
			add = append(add, episode(t.loc[8], t.loc[9], last))
		}
	}
	return remove, add
}
