package parser

import (
	"sort"
	"strings"
	"time"

	"github.com/bitzorro/relstring/internal/match"
)

// Result is the flat projection of a parsed release name. Numbering
// fields that did not survive the rules stay at their zero state:
// SeasonNumber nil, the episode slices empty, Version -1.
type Result struct {
	OriginalName           string     `json:"original_name"`
	SeriesName             string     `json:"series_name,omitempty"`
	SeasonNumber           *int       `json:"season_number,omitempty"`
	EpisodeNumbers         []int      `json:"episode_numbers,omitempty"`
	AbsoluteEpisodeNumbers []int      `json:"absolute_episode_numbers,omitempty"`
	ReleaseGroup           string     `json:"release_group,omitempty"`
	AirDate                *time.Time `json:"air_date,omitempty"`
	Version                int        `json:"version"`
	ExtraInfo              string     `json:"extra_info,omitempty"`
}

// IsEmpty reports whether the parse produced nothing usable.
func (r Result) IsEmpty() bool {
	return r.SeriesName == "" && r.SeasonNumber == nil &&
		len(r.EpisodeNumbers) == 0 && len(r.AbsoluteEpisodeNumbers) == 0
}

// Project flattens a settled match set into a Result. The extended
// title wins over the plain title, seasons only project when a single
// distinct value remains, and episode lists come out sorted and
// deduplicated.
func Project(name string, ms *match.Matches) Result {
	r := Result{OriginalName: name, Version: -1}
	if ms == nil {
		return r
	}

	title := ms.FirstNamed("extended_title", match.Public)
	if title == nil {
		title = ms.FirstNamed("title", match.Public)
	}
	if title != nil {
		r.SeriesName = title.Str()
	}

	if seasons := distinctValues(ms.Named("season", match.Public)); len(seasons) == 1 {
		r.SeasonNumber = &seasons[0]
	}
	r.EpisodeNumbers = distinctValues(ms.Named("episode", match.Public))
	r.AbsoluteEpisodeNumbers = distinctValues(ms.Named("absolute_episode", match.Public))

	if group := ms.FirstNamed("release_group", match.Public); group != nil {
		r.ReleaseGroup = group.Str()
	}
	if date := ms.FirstNamed("date", match.Public); date != nil {
		if t, ok := date.Value.(time.Time); ok {
			r.AirDate = &t
		}
	}
	if version := ms.FirstNamed("version", match.Public); version != nil {
		r.Version = version.Int()
	}
	if others := ms.Named("other", match.Public); len(others) > 0 {
		var parts []string
		for _, o := range others {
			parts = append(parts, o.Str())
		}
		r.ExtraInfo = strings.Join(parts, " ")
	}
	return r
}

func distinctValues(matches []*match.Match) []int {
	seen := make(map[int]bool, len(matches))
	var out []int
	for _, m := range matches {
		if v := m.Int(); !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

