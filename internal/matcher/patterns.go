package matcher

import "regexp"

// Structural patterns. Numbering markers (the "S" in S02E14) are kept
// as private parent matches so the digits stay addressable on their
// own while the marker text never leaks into titles.
var (
	dateYMDRe = regexp.MustCompile(`\b(\d{4})[-. _](\d{1,2})[-. _](\d{1,2})\b`)
	dateDMYRe = regexp.MustCompile(`\b(\d{1,2})[-. _](\d{1,2})[-. _](\d{4})\b`)

	// S02E14, S02E01E02, S02E01-E04, plus the 3x09 shorthand.
	seasonEpisodeRe = regexp.MustCompile(`(?i)\bs(\d{1,2})[. _-]?e(\d{1,3})((?:[. _-]?e\d{1,3})*)\b`)
	episodeChainRe  = regexp.MustCompile(`(?i)e(\d{1,3})`)
	xEpisodeRe      = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{1,3})\b`)

	// Spanish scene numbering: Cap.203, Cap.203_204.
	capRe = regexp.MustCompile(`(?i)\bcap[. ]?(\d{1,2})(\d{2})(?:[_-](?:cap[. ]?)?(\d{1,2})(\d{2}))?\b`)

	seasonWordRe  = regexp.MustCompile(`(?i)\b(?:season|temporada|saison|temp|s)[. _-]*(\d{1,4})\b`)
	episodeWordRe = regexp.MustCompile(`(?i)\b(?:episode|ep|e)[. _-]*(\d{1,3})\b`)
	episodeOfRe   = regexp.MustCompile(`(?i)\b(\d{1,3})[. _]?of[. _]?(\d{1,3})\b`)
	partRe        = regexp.MustCompile(`(?i)\b(?:part|pt)[. _-]?(\d{1,3})\b`)
	filmRe        = regexp.MustCompile(`(?i)f(\d{1,2})\b`)

	versionRe        = regexp.MustCompile(`(?i)v(\d)\b`)
	screenSizeRe     = regexp.MustCompile(`(?i)\b(\d{3,4})([pi])\b`)
	bareScreenSizeRe = regexp.MustCompile(`\b(360|480|576|720|1080|2160)\b`)
	yearRe           = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	countryRe        = regexp.MustCompile(`\b(US|UK|GB|AU|NZ|CA)\b`)

	digitRangeRe = regexp.MustCompile(`\b\d{3,4}-\d{3,4}\b`)

	// Trailing scene group: "...x264-GROUP" or "...-GROUP[TRASH]".
	dashGroupRe = regexp.MustCompile(`-([A-Za-z][A-Za-z0-9_.\[\]{}()+]*)$`)

	// Leading "[Group]." prefix on the first unmatched stretch.
	bracketPrefixRe = regexp.MustCompile(`^\W*\[([^\[\]]+)\][. _-]*`)
	bracketOnlyRe   = regexp.MustCompile(`^[. _-]*\[[^\[\]]+\][. _-]*$`)

	// Interior standalone number with text on both sides, the classic
	// "Show Name 2 The Big Show" ambiguity.
	numericSplitRe = regexp.MustCompile(`^(.*?[A-Za-z].*?)[. _-](\d{1,3})[. _-](.*[A-Za-z].*)$`)

	separatorRe  = regexp.MustCompile(`[._]`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)
