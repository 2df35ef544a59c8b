// Package matcher turns a raw release name into the initial match set
// the rule catalog then refines. It is a single pass of ordered regex
// tables over one string: structural numbering first, then the
// technical vocabulary, then number heuristics and group candidates,
// and finally title carving over whatever text is left.
package matcher

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bitzorro/relstring/internal/match"
)

// Tags attached by the number heuristics. A weak-duplicate pair is a
// bare 3-4 digit run split into season+episode digits; the anime tag
// marks evidence that the release looks like a fansub (leading
// bracketed group).
const (
	TagWeakDuplicate = "weak-duplicate"
	TagAnime         = "anime"
	TagExpected      = "expected"
)

var numberingNames = map[string]bool{
	"season": true, "episode": true, "absolute_episode": true,
	"part": true, "episode_count": true, "date": true,
}

var technicalNames = map[string]bool{
	"screen_size": true, "format": true, "video_codec": true,
	"audio_codec": true, "language": true, "other": true, "version": true,
}

type span struct{ start, end int }

type scanner struct {
	input      string
	ctx        *match.Context
	ms         *match.Matches
	claimed    []span
	skips      []span // digit ranges like 101-104, left for the title rules
	bareSizes  []span
	animeFront bool
	titled     bool
}

// Scan produces the initial match set for input. The context supplies
// expected titles and groups; the show type hint does not change
// matching, only the rules read it.
func Scan(input string, ctx *match.Context) *match.Matches {
	if ctx == nil {
		ctx = match.NewContext(match.ShowTypeUnknown)
	}
	s := &scanner{
		input:      input,
		ctx:        ctx,
		ms:         match.NewMatches(input),
		animeFront: bracketPrefixRe.MatchString(input),
	}
	s.scanExpected()
	s.scanDates()
	s.scanCap()
	s.scanSeasonEpisode()
	s.scanSeasonWords()
	s.scanEpisodeOf()
	s.scanEpisodeWords()
	s.scanParts()
	s.scanVersions()
	s.scanScreenSizes()
	s.scanProperties()
	s.scanYears()
	s.scanCountries()
	s.scanFilms()
	s.scanDigits()
	s.scanDashGroup()
	s.scanTailGroup()
	s.nameTitles()
	return s.ms
}

func (s *scanner) add(m *match.Match) *match.Match {
	if m.Raw == "" {
		m.Raw = s.input[m.Start:m.End]
	}
	s.ms.Append(m)
	return m
}

func (s *scanner) free(start, end int) bool {
	for _, c := range s.claimed {
		if c.start < end && start < c.end {
			return false
		}
	}
	return true
}

func (s *scanner) claim(start, end int) {
	s.claimed = append(s.claimed, span{start, end})
}

func atoi(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func (s *scanner) scanExpected() {
	for _, exp := range s.ctx.ExpectedTitles {
		re, err := expectedPattern(exp)
		if err != nil {
			continue
		}
		loc := re.FindStringIndex(s.input)
		if loc == nil || loc[0] == loc[1] || !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		s.add(&match.Match{
			Name: "title", Start: loc[0], End: loc[1],
			Value: s.input[loc[0]:loc[1]],
			Tags:  []string{TagExpected},
		})
		s.titled = true
		break
	}
	for _, exp := range s.ctx.ExpectedGroups {
		re, err := expectedPattern(exp)
		if err != nil {
			continue
		}
		loc := re.FindStringIndex(s.input)
		if loc == nil || loc[0] == loc[1] || !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		s.add(&match.Match{
			Name: "release_group", Start: loc[0], End: loc[1],
			Value: s.input[loc[0]:loc[1]],
			Tags:  []string{TagExpected},
		})
		break
	}
}

// expectedPattern compiles an expected title or group entry. Entries
// prefixed with "re:" are regular expressions; everything else is a
// literal where spaces and dots match any common separator.
func expectedPattern(exp string) (*regexp.Regexp, error) {
	if rest, ok := strings.CutPrefix(exp, "re:"); ok {
		return regexp.Compile(`(?i)` + strings.ReplaceAll(rest, " ", `[ ._-]`))
	}
	var b strings.Builder
	b.WriteString(`(?i)`)
	for _, r := range exp {
		switch r {
		case ' ', '.', '_', '-':
			b.WriteString(`[ ._-]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.Compile(b.String())
}

func (s *scanner) scanDates() {
	for _, loc := range dateYMDRe.FindAllStringSubmatchIndex(s.input, -1) {
		s.addDate(loc[0], loc[1],
			atoi(s.input[loc[2]:loc[3]]), atoi(s.input[loc[4]:loc[5]]), atoi(s.input[loc[6]:loc[7]]))
	}
	for _, loc := range dateDMYRe.FindAllStringSubmatchIndex(s.input, -1) {
		s.addDate(loc[0], loc[1],
			atoi(s.input[loc[6]:loc[7]]), atoi(s.input[loc[4]:loc[5]]), atoi(s.input[loc[2]:loc[3]]))
	}
}

func (s *scanner) addDate(start, end, year, month, day int) {
	if month < 1 || month > 12 || day < 1 || day > 31 || !s.free(start, end) {
		return
	}
	s.claim(start, end)
	s.add(&match.Match{
		Name: "date", Start: start, End: end,
		Value: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
	})
}

// scanCap handles the Spanish scene convention Cap.SSEE and the range
// form Cap.SSEE_SSEE, where the leading digits are the season and the
// trailing two the episode.
func (s *scanner) scanCap() {
	for _, loc := range capRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		parent.Value = parent.Raw
		season1 := atoi(s.input[loc[2]:loc[3]])
		ep1 := atoi(s.input[loc[4]:loc[5]])
		s.addSeason(loc[2], loc[3], season1, parent)
		if loc[6] < 0 {
			s.add(&match.Match{Name: "episode", Start: loc[4], End: loc[5], Value: ep1, Parent: parent})
			continue
		}
		season2 := atoi(s.input[loc[6]:loc[7]])
		ep2 := atoi(s.input[loc[8]:loc[9]])
		if season2 == season1 && ep2 > ep1 && ep2-ep1 < 100 {
			for v := ep1; v <= ep2; v++ {
				start, end := loc[0], loc[1]
				switch v {
				case ep1:
					start, end = loc[4], loc[5]
				case ep2:
					start, end = loc[8], loc[9]
				}
				s.add(&match.Match{Name: "episode", Start: start, End: end, Raw: s.input[start:end], Value: v, Parent: parent})
			}
			continue
		}
		s.add(&match.Match{Name: "episode", Start: loc[4], End: loc[5], Value: ep1, Parent: parent})
		s.addSeason(loc[6], loc[7], season2, parent)
		s.add(&match.Match{Name: "episode", Start: loc[8], End: loc[9], Value: ep2, Parent: parent})
	}
}

// addSeason skips duplicate season values so that a word form and a
// numeric form of the same season detected side by side project as one.
func (s *scanner) addSeason(start, end, value int, parent *match.Match) {
	for _, existing := range s.ms.Named("season") {
		if existing.Int() == value {
			return
		}
	}
	s.add(&match.Match{Name: "season", Start: start, End: end, Value: value, Parent: parent})
}

func (s *scanner) scanSeasonEpisode() {
	for _, loc := range seasonEpisodeRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		parent.Value = parent.Raw
		s.addSeason(loc[2], loc[3], atoi(s.input[loc[2]:loc[3]]), parent)
		s.add(&match.Match{Name: "episode", Start: loc[4], End: loc[5], Value: atoi(s.input[loc[4]:loc[5]]), Parent: parent})
		if loc[6] >= 0 && loc[7] > loc[6] {
			for _, tail := range episodeChainRe.FindAllStringSubmatchIndex(s.input[loc[6]:loc[7]], -1) {
				start, end := loc[6]+tail[2], loc[6]+tail[3]
				s.add(&match.Match{Name: "episode", Start: start, End: end, Value: atoi(s.input[start:end]), Parent: parent})
			}
		}
	}
	for _, loc := range xEpisodeRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		parent.Value = parent.Raw
		s.addSeason(loc[2], loc[3], atoi(s.input[loc[2]:loc[3]]), parent)
		s.add(&match.Match{Name: "episode", Start: loc[4], End: loc[5], Value: atoi(s.input[loc[4]:loc[5]]), Parent: parent})
	}
}

func (s *scanner) scanSeasonWords() {
	for _, loc := range seasonWordRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		value := atoi(s.input[loc[2]:loc[3]])
		if value >= 100 {
			continue // bare 3-4 digit runs are not seasons
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		parent.Value = parent.Raw
		s.addSeason(loc[2], loc[3], value, parent)
	}
}

func (s *scanner) scanEpisodeOf() {
	for _, loc := range episodeOfRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		s.add(&match.Match{Name: "episode", Start: loc[2], End: loc[3], Value: atoi(s.input[loc[2]:loc[3]]), Parent: parent})
		s.add(&match.Match{Name: "episode_count", Start: loc[4], End: loc[5], Value: atoi(s.input[loc[4]:loc[5]]), Parent: parent})
	}
}

func (s *scanner) scanEpisodeWords() {
	for _, loc := range episodeWordRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		parent.Value = parent.Raw
		s.add(&match.Match{Name: "episode", Start: loc[2], End: loc[3], Value: atoi(s.input[loc[2]:loc[3]]), Parent: parent})
	}
}

func (s *scanner) scanParts() {
	for _, loc := range partRe.FindAllStringSubmatchIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		s.add(&match.Match{Name: "part", Start: loc[2], End: loc[3], Value: atoi(s.input[loc[2]:loc[3]]), Parent: parent})
	}
}

func (s *scanner) scanVersions() {
	for _, loc := range versionRe.FindAllStringSubmatchIndex(s.input, -1) {
		if loc[0] > 0 && isLetter(s.input[loc[0]-1]) {
			continue // the V of a word like TV5, not a version marker
		}
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		s.add(&match.Match{Name: "version", Start: loc[2], End: loc[3], Value: atoi(s.input[loc[2]:loc[3]]), Parent: parent})
	}
}

func (s *scanner) scanScreenSizes() {
	for _, loc := range screenSizeRe.FindAllStringIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		s.add(&match.Match{
			Name: "screen_size", Start: loc[0], End: loc[1],
			Value: strings.ToLower(s.input[loc[0]:loc[1]]),
		})
	}
	// A bare 720 or 1080 still claims the span but keeps the digits
	// available to the weak season/episode split; the screen-size
	// conflict rule picks the winner.
	for _, loc := range bareScreenSizeRe.FindAllStringIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		s.bareSizes = append(s.bareSizes, span{loc[0], loc[1]})
		s.add(&match.Match{
			Name: "screen_size", Start: loc[0], End: loc[1],
			Value: s.input[loc[0]:loc[1]] + "p",
		})
	}
}

func (s *scanner) scanProperties() {
	for _, p := range properties {
		for _, loc := range p.re.FindAllStringIndex(s.input, -1) {
			if !s.free(loc[0], loc[1]) {
				continue
			}
			s.claim(loc[0], loc[1])
			s.add(&match.Match{Name: p.name, Start: loc[0], End: loc[1], Value: p.value})
		}
	}
}

func (s *scanner) scanYears() {
	for _, loc := range yearRe.FindAllStringIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		s.add(&match.Match{Name: "year", Start: loc[0], End: loc[1], Value: atoi(s.input[loc[0]:loc[1]])})
	}
}

func (s *scanner) scanCountries() {
	for _, loc := range countryRe.FindAllStringIndex(s.input, -1) {
		if !s.free(loc[0], loc[1]) {
			continue
		}
		s.claim(loc[0], loc[1])
		s.add(&match.Match{Name: "country", Start: loc[0], End: loc[1], Value: s.input[loc[0]:loc[1]]})
	}
}

func (s *scanner) scanFilms() {
	for _, loc := range filmRe.FindAllStringSubmatchIndex(s.input, -1) {
		if loc[0] > 0 && isDigit(s.input[loc[0]-1]) {
			continue
		}
		if !s.free(loc[0], loc[1]) {
			continue
		}
		value := atoi(s.input[loc[2]:loc[3]])
		if value == 0 {
			continue
		}
		s.claim(loc[0], loc[1])
		parent := s.add(&match.Match{Name: "marker", Start: loc[0], End: loc[1], Private: true})
		s.add(&match.Match{Name: "film", Start: loc[2], End: loc[3], Value: value, Parent: parent})
	}
}

// scanDigits applies the bare-number heuristics. A 3-4 digit run with
// no earlier numbering evidence splits into a weak season+episode pair
// (102 reads as 1x02 until a rule says otherwise); short numbers become
// weak episodes when they sit right before recognized content; numbers
// directly chained to an earlier episode with a dash become additional
// episodes so ranges like E01-04 survive.
func (s *scanner) scanDigits() {
	for _, loc := range digitRangeRe.FindAllStringIndex(s.input, -1) {
		if s.free(loc[0], loc[1]) {
			s.skips = append(s.skips, span{loc[0], loc[1]})
		}
	}
	for start, end := 0, 0; start < len(s.input); start = end {
		if !isDigit(s.input[start]) {
			end = start + 1
			continue
		}
		end = start
		for end < len(s.input) && isDigit(s.input[end]) {
			end++
		}
		s.scanDigitRun(start, end)
	}
}

// scanDigitRun handles one maximal digit run. A letter neighbor rules
// the run out unless that neighbor is already claimed, so "102v2"
// still yields 102 after the version marker took the v2.
func (s *scanner) scanDigitRun(start, end int) {
	if end-start > 4 || s.inSkips(start, end) {
		return
	}
	if !s.free(start, end) && !s.isBareSize(start, end) {
		return
	}
	if start > 0 && isLetter(s.input[start-1]) && s.free(start-1, start) {
		return
	}
	if end < len(s.input) && isLetter(s.input[end]) && s.free(end, end+1) {
		return
	}
	tok := s.input[start:end]
	if prev := s.lastNumberingBefore(start); prev != nil {
		gap := s.input[prev.End:start]
		if prev.Name == "episode" && strings.Contains(gap, "-") && strings.Trim(gap, " ._-") == "" {
			s.claim(start, end)
			s.add(&match.Match{Name: "episode", Start: start, End: end, Value: atoi(tok)})
		}
		return
	}
	if !s.precedesBoundary(end) {
		return
	}
	switch len(tok) {
	case 3, 4:
		cut := end - 2
		tags := []string{TagWeakDuplicate}
		if s.animeFront {
			tags = append(tags, TagAnime)
		}
		if !s.isBareSize(start, end) {
			s.claim(start, end)
		}
		s.add(&match.Match{Name: "season", Start: start, End: cut, Value: atoi(s.input[start:cut]), Tags: tags})
		s.add(&match.Match{Name: "episode", Start: cut, End: end, Value: atoi(s.input[cut:end]), Tags: append([]string{}, tags...)})
	default:
		s.claim(start, end)
		s.add(&match.Match{Name: "episode", Start: start, End: end, Value: atoi(tok)})
	}
}

func (s *scanner) inSkips(start, end int) bool {
	for _, sk := range s.skips {
		if sk.start < end && start < sk.end {
			return true
		}
	}
	return false
}

func (s *scanner) isBareSize(start, end int) bool {
	for _, b := range s.bareSizes {
		if b.start == start && b.end == end {
			return true
		}
	}
	return false
}

func (s *scanner) lastNumberingBefore(pos int) *match.Match {
	var best *match.Match
	for _, m := range s.ms.All() {
		if m.Private || m.End > pos {
			continue
		}
		if m.Name != "season" && m.Name != "episode" {
			continue
		}
		if best == nil || m.End > best.End {
			best = m
		}
	}
	return best
}

// precedesBoundary reports whether only separators sit between pos and
// the next recognized span or the end of the string.
func (s *scanner) precedesBoundary(pos int) bool {
	for pos < len(s.input) && strings.ContainsRune(" ._-[]()", rune(s.input[pos])) {
		pos++
	}
	if pos >= len(s.input) {
		return true
	}
	return !s.free(pos, pos+1)
}

func (s *scanner) scanDashGroup() {
	loc := dashGroupRe.FindStringSubmatchIndex(s.input)
	if loc == nil {
		return
	}
	start, end := loc[2], loc[3]
	for _, c := range s.claimed {
		if c.start < end && start < c.end {
			if c.start <= start {
				return
			}
			if c.start < end {
				end = c.start
			}
		}
	}
	start, end = trimSpan(s.input, start, end)
	if start >= end || !containsLetter(s.input[start:end]) {
		return
	}
	s.claim(start, end)
	s.add(&match.Match{Name: "release_group", Start: start, End: end, Value: s.input[start:end]})
}

// scanTailGroup promotes an unmatched stretch at the very end of the
// name to a release-group candidate, but only when it directly follows
// a technical match. That keeps trailing episode titles out while
// still catching dash-less names like "...H264.BS666.rartv".
func (s *scanner) scanTailGroup() {
	if len(s.ms.Named("release_group")) > 0 {
		return
	}
	tail := 0
	for _, c := range s.claimed {
		if c.end > tail {
			tail = c.end
		}
	}
	if tail == 0 || tail >= len(s.input) {
		return
	}
	follows := false
	for _, m := range s.ms.All() {
		if !m.Private && m.End == tail && technicalNames[m.Name] {
			follows = true
			break
		}
	}
	text := s.input[tail:]
	if !follows || !containsLetter(text) || bracketOnlyRe.MatchString(text) {
		return
	}
	start, end := trimSpan(s.input, tail, len(s.input))
	if start >= end {
		return
	}
	s.claim(start, end)
	s.add(&match.Match{Name: "release_group", Start: start, End: end, Value: s.input[start:end]})
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func containsLetter(text string) bool {
	for i := 0; i < len(text); i++ {
		if isLetter(text[i]) {
			return true
		}
	}
	return false
}

func containsAlnum(text string) bool {
	for i := 0; i < len(text); i++ {
		if isLetter(text[i]) || isDigit(text[i]) {
			return true
		}
	}
	return false
}

func trimSpan(input string, start, end int) (int, int) {
	return trimSpanAny(input, start, end, " ._-")
}

// trimTitleSpan also drops bracket debris left around claimed spans,
// so "Some.Show.[" carves to "Some.Show". Group spans keep their
// brackets and go through trimSpan instead.
func trimTitleSpan(input string, start, end int) (int, int) {
	return trimSpanAny(input, start, end, " ._-[](){}")
}

func trimSpanAny(input string, start, end int, cutset string) (int, int) {
	for start < end && strings.ContainsRune(cutset, rune(input[start])) {
		start++
	}
	for end > start && strings.ContainsRune(cutset, rune(input[end-1])) {
		end--
	}
	return start, end
}

// Clean normalizes raw span text for display: separators become single
// spaces, edges are trimmed.
func Clean(raw string) string {
	out := separatorRe.ReplaceAllString(raw, " ")
	out = multiSpaceRe.ReplaceAllString(out, " ")
	return strings.Trim(out, " -")
}
