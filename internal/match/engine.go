package match

// Rule is one ordered rewrite over the match set. When inspects the
// current state and returns a trigger describing what to change, or nil
// when the rule does not apply; a miss is always a clean no-op. Then
// turns the trigger into matches to remove and matches to append.
//
// Rules hold no mutable state, so a single catalog instance is safe to
// share across concurrent parses.
type Rule interface {
	Name() string
	When(ms *Matches, ctx *Context) any
	Then(ms *Matches, trigger any) (remove, add []*Match)
}

// Run applies every rule exactly once, in catalog order. Each rule sees
// the settled result of all previous rewrites; there is no second pass
// and no fixpoint iteration, so rule cost stays linear in catalog size.
func Run(rules []Rule, ms *Matches, ctx *Context) {
	for _, r := range rules {
		trigger := r.When(ms, ctx)
		if trigger == nil {
			continue
		}
		remove, add := r.Then(ms, trigger)
		ms.Remove(remove...)
		ms.Append(add...)
	}
}
