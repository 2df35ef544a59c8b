// Package parser is the public face of the engine: scan, rules,
// projection and a panic boundary behind one Parse call.
package parser

import (
	"fmt"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/sirupsen/logrus"

	"github.com/bitzorro/relstring/internal/match"
	"github.com/bitzorro/relstring/internal/matcher"
	"github.com/bitzorro/relstring/internal/rules"
)

// Options configures a Parser. The expected lists follow the matcher
// convention: literals, or regular expressions behind a "re:" prefix.
type Options struct {
	ExpectedTitles []string
	ExpectedGroups []string
	Logger         logrus.FieldLogger
}

// Parser parses release names. It is safe for concurrent use: every
// parse builds its own match set, and results are memoized in a
// sharded concurrent map keyed by show type and name.
type Parser struct {
	catalog        []match.Rule
	expectedTitles []string
	expectedGroups []string
	log            logrus.FieldLogger
	memo           *csmap.CsMap[string, Result]
}

// New builds a Parser with the full rule catalog.
func New(opts Options) *Parser {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Parser{
		catalog:        rules.Catalog(),
		expectedTitles: opts.ExpectedTitles,
		expectedGroups: opts.ExpectedGroups,
		log:            log,
		memo:           csmap.Create[string, Result](),
	}
}

// Parse extracts everything the engine knows from one release name.
// It never panics: a blown rule or a degenerate name logs an error and
// yields a minimal result carrying only the original name. Parsing is
// deterministic, so results are memoized per show type.
func (p *Parser) Parse(name string, showType match.ShowType) Result {
	key := showType.String() + "|" + name
	if cached, ok := p.memo.Load(key); ok {
		return cached
	}

	result := Result{OriginalName: name, Version: -1}
	ms, err := p.Matches(name, showType)
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"release": name,
			"error":   err,
		}).Error("parser recovered, returning minimal result")
	} else {
		result = Project(name, ms)
	}

	p.memo.Store(key, result)
	return result
}

// Matches runs the scan and the rule catalog and returns the settled
// match set, for callers that need the spans behind the projection.
// Failures inside the engine come back as an error instead of a panic.
func (p *Parser) Matches(name string, showType match.ShowType) (ms *match.Matches, err error) {
	defer func() {
		if r := recover(); r != nil {
			ms, err = nil, fmt.Errorf("parse %q: %v", name, r)
		}
	}()

	ctx := match.NewContext(showType)
	ctx.ExpectedTitles = p.expectedTitles
	ctx.ExpectedGroups = p.expectedGroups

	ms = matcher.Scan(name, ctx)
	match.Run(p.catalog, ms, ctx)

	p.log.WithFields(logrus.Fields{
		"release":   name,
		"show_type": ctx.ShowType().String(),
		"matches":   ms.Len(),
	}).Debug("parsed release name")
	return ms, nil
}

// MemoLen returns the number of memoized results, mostly for tests
// and diagnostics.
func (p *Parser) MemoLen() int {
	return p.memo.Count()
}
