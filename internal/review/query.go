package review

import "strings"

// maxQueryTerms bounds the derived prior-art query so the search backend
// gets key concepts rather than the whole proposal.
const maxQueryTerms = 12

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"here": {}, "his": {}, "her": {}, "how": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "my": {}, "no": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "our": {}, "over": {}, "such": {}, "that": {},
	"the": {}, "their": {}, "then": {}, "there": {}, "these": {}, "they": {},
	"this": {}, "to": {}, "was": {}, "we": {}, "were": {}, "which": {},
	"while": {}, "will": {}, "with": {}, "would": {}, "your": {},
	// proposal boilerplate that carries no search signal
	"proposal": {}, "project": {}, "team": {}, "budget": {}, "milestone": {},
	"milestones": {}, "funding": {}, "requested": {}, "require": {},
	"requires": {}, "believe": {}, "aims": {}, "aiming": {}, "plan": {},
	"plans": {}, "outlines": {}, "includes": {}, "years": {}, "year": {},
	"salaries": {}, "equipment": {},
}

// deriveQuery extracts stopword-filtered key terms from the proposal text,
// in order of first appearance, for the prior-art lookup.
func deriveQuery(proposal string) string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, tok := range splitTokens(proposal) {
		tok = strings.ToLower(strings.Trim(tok, ".,;:!?()[]{}\"'"))
		if len(tok) < 3 {
			continue
		}
		if !isWordToken(tok) {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) >= maxQueryTerms {
			break
		}
	}
	return strings.Join(out, " ")
}

func splitTokens(s string) []string {
	replacer := strings.NewReplacer("-", " ", "/", " ")
	return strings.Fields(replacer.Replace(s))
}

// isWordToken drops numbers and currency figures ("$5M", "2026") which make
// poor scholarly-search terms.
func isWordToken(tok string) bool {
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			return false
		}
		if r == '$' || r == '%' {
			return false
		}
	}
	return true
}
