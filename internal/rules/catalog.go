// Package rules holds the ordered post-processing catalog applied to a
// freshly scanned match set. Every rule is a targeted repair for one
// known misread of scene release names; a rule whose preconditions do
// not hold is a clean no-op, never an error.
package rules

import (
	"strings"

	"github.com/bitzorro/relstring/internal/match"
)

// Catalog returns the rules in their fixed application order. The
// order is part of the contract: title repairs run before the extended
// title is assembled, anime numbering runs before the generic episode
// fixes, and the release-group cleanup runs close to last so it sees
// the final group candidate.
func Catalog() []match.Rule {
	return []match.Rule{
		FixAnimeReleaseGroup{},
		FixSeasonNotDetected{},
		SpanishNewpctReleaseName{},
		FixScreenSizeConflict{},
		FixInvalidTitleOrAlternativeTitle{},
		FixWrongTitleDueToFilmTitle{},
		ExpectedTitleDots{},
		CreateExtendedTitleWithAlternativeTitle{},
		CreateExtendedTitleWithCountryOrYear{},
		FixNumericTitle{},
		AnimeWithSeasonAbsoluteEpisodeNumbers{},
		AnimeAbsoluteEpisodeNumbers{},
		AbsoluteEpisodeNumbers{},
		PartsAsEpisodeNumbers{},
		FixWrongSeasonAndReleaseGroup{},
		FixSeasonEpisodeDetection{},
		FixSeasonRangeDetection{},
		FixEpisodeRangeDetection{},
		ReleaseGroupPostProcessor{},
		FixMultipleTitles{},
	}
}

const (
	tagExpected      = "expected"
	tagAnime         = "anime"
	tagWeakDuplicate = "weak-duplicate"
)

// seasonWords are title fragments that mean "season" rather than being
// part of a show name, across the languages the scene actually uses.
var seasonWords = map[string]bool{
	"season": true, "saison": true, "series": true,
	"temporada": true, "temp": true, "tem": true,
}

// spanishSeasonWords is the subset the newpct releases use.
var spanishSeasonWords = map[string]bool{
	"temporada": true, "temp": true, "tem": true,
}

// problematicWords are group names that read like season markers and
// trip the numbering detection (S666 out of BS666).
var problematicWords = []string{"bs666", "ccs3", "qqss44"}

// titlePlaceholders are title values that are really slot fillers from
// multi-part movie releases, never a show name.
var titlePlaceholders = map[string]bool{
	"special": true, "season": true, "multi": true,
}

// animeGroupBlacklist holds bracketed prefixes that look like fansub
// groups but are not.
var animeGroupBlacklist = map[string]bool{
	"private": true, "req": true, "no.rar": true, "season": true,
}

var episodeMarkerWords = map[string]bool{"e": true, "ep": true, "episode": true}

func lowerValue(m *match.Match) string {
	return strings.ToLower(m.Str())
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
