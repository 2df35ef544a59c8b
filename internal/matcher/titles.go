package matcher

import "github.com/bitzorro/relstring/internal/match"

// nameTitles carves titles out of the text no table claimed. The first
// readable stretch becomes the title (or the film_title when a film
// number was found after it); stretches between the title and the first
// numbering evidence become alternative titles; stretches right after
// the numbering become the episode title. A leading "[Group]" bracket
// is skipped and left unmatched for the anime release-group rule.
func (s *scanner) nameTitles() {
	firstStruct, lastNumEnd := -1, -1
	for _, m := range s.ms.All() {
		if m.Private || !numberingNames[m.Name] {
			continue
		}
		if firstStruct < 0 || m.Start < firstStruct {
			firstStruct = m.Start
		}
		if m.End > lastNumEnd {
			lastNumEnd = m.End
		}
	}
	firstTechAfter := -1
	if lastNumEnd >= 0 {
		for _, m := range s.ms.All() {
			if m.Private || !technicalNames[m.Name] || m.Start < lastNumEnd {
				continue
			}
			if firstTechAfter < 0 || m.Start < firstTechAfter {
				firstTechAfter = m.Start
			}
		}
	}

	film := s.ms.FirstNamed("film")
	titled := s.titled
	filmTitled := false
	for _, g := range s.gaps() {
		gs, ge := g.start, g.end
		if gs == 0 {
			if loc := bracketPrefixRe.FindStringIndex(s.input[gs:ge]); loc != nil {
				gs += loc[1]
			}
		}
		ts, te := trimTitleSpan(s.input, gs, ge)
		if ts >= te || !containsAlnum(s.input[ts:te]) {
			continue
		}
		if !titled {
			if film != nil && !filmTitled && te <= film.Start {
				s.addNamedSpan("film_title", ts, te)
				filmTitled = true
				continue
			}
			s.nameTitleGap(ts, te)
			titled = true
			continue
		}
		if firstStruct >= 0 && te <= firstStruct {
			s.addNamedSpan("alternative_title", ts, te)
			continue
		}
		if lastNumEnd >= 0 && gs >= lastNumEnd && (firstTechAfter < 0 || te <= firstTechAfter) {
			s.addNamedSpan("episode_title", ts, te)
		}
	}
}

// nameTitleGap places the title match for one gap, splitting off a
// trailing stretch when an interior standalone number separates two
// runs of words. "Show Name 2 The Big Show" comes out as a title, an
// unmatched numeric hole and an episode title; the numeric-title rule
// decides later whether to glue them back together.
func (s *scanner) nameTitleGap(start, end int) {
	text := s.input[start:end]
	if loc := numericSplitRe.FindStringSubmatchIndex(text); loc != nil {
		lts, lte := trimTitleSpan(s.input, start+loc[2], start+loc[3])
		s.addNamedSpan("title", lts, lte)
		rts, rte := trimTitleSpan(s.input, start+loc[6], start+loc[7])
		s.addNamedSpan("episode_title", rts, rte)
		return
	}
	s.addNamedSpan("title", start, end)
}

func (s *scanner) addNamedSpan(name string, start, end int) {
	raw := s.input[start:end]
	s.add(&match.Match{Name: name, Start: start, End: end, Raw: raw, Value: Clean(raw)})
}

// gaps returns the complement of all claimed spans, in order.
func (s *scanner) gaps() []span {
	covered := make([]bool, len(s.input))
	for _, c := range s.claimed {
		for i := max(0, c.start); i < min(len(s.input), c.end); i++ {
			covered[i] = true
		}
	}
	var out []span
	start := -1
	for i := 0; i <= len(s.input); i++ {
		if i < len(s.input) && !covered[i] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, span{start, i})
			start = -1
		}
	}
	return out
}
