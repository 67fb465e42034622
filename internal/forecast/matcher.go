package forecast

import "strings"

// ColumnMatcher picks a column from a header row.
type ColumnMatcher interface {
	// Match returns the chosen header and true, or "" and false.
	Match(headers []string) (string, bool)

	// Rule describes the matcher for logs.
	Rule() string
}

// ExactMatcher selects the first candidate, in candidate priority order,
// that is present verbatim among the headers.
type ExactMatcher struct {
	Candidates []string
}

func (m ExactMatcher) Match(headers []string) (string, bool) {
	for _, want := range m.Candidates {
		for _, h := range headers {
			if h == want {
				return h, true
			}
		}
	}
	return "", false
}

func (m ExactMatcher) Rule() string {
	return "exact name (" + strings.Join(m.Candidates, ", ") + ")"
}

// KeywordMatcher selects the first header, in column order, whose lower-cased
// name contains any of the keywords.
type KeywordMatcher struct {
	Keywords []string
}

func (m KeywordMatcher) Match(headers []string) (string, bool) {
	for _, h := range headers {
		name := strings.ToLower(h)
		for _, kw := range m.Keywords {
			if kw != "" && strings.Contains(name, strings.ToLower(kw)) {
				return h, true
			}
		}
	}
	return "", false
}

func (m KeywordMatcher) Rule() string {
	return "case-insensitive substring (" + strings.Join(m.Keywords, ", ") + ")"
}

// MatcherChain tries each matcher in turn; the first hit wins.
type MatcherChain []ColumnMatcher

// NewMatcherChain builds the usual chain: exact candidates first, then the
// keyword rule. Empty lists are left out.
func NewMatcherChain(exact, keywords []string) MatcherChain {
	var chain MatcherChain
	if len(exact) > 0 {
		chain = append(chain, ExactMatcher{Candidates: exact})
	}
	if len(keywords) > 0 {
		chain = append(chain, KeywordMatcher{Keywords: keywords})
	}
	return chain
}

// Find returns the matched header and the rule that matched it.
func (c MatcherChain) Find(headers []string) (column, rule string, ok bool) {
	for _, m := range c {
		if col, hit := m.Match(headers); hit {
			return col, m.Rule(), true
		}
	}
	return "", "", false
}

// Describe lists the rules of the chain, for error messages.
func (c MatcherChain) Describe() string {
	rules := make([]string, len(c))
	for i, m := range c {
		rules[i] = m.Rule()
	}
	return strings.Join(rules, " or ")
}
