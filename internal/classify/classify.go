// Package classify maps free-text student questions to coarse subject-area
// topics using an ordered keyword ruleset. Matching is deliberately simple:
// lower-cased substring containment, first matching rule wins.
package classify

import "strings"

// Topic is a subject-area label assigned to a student question.
type Topic string

const (
	Computing  Topic = "Computing"
	Humanities Topic = "Humanities"
	Science    Topic = "Science"
	Education  Topic = "Education"
	General    Topic = "General"
)

// FilterAll is the sentinel filter value that matches every topic.
const FilterAll = "All"

// AllTopics returns every topic in canonical order.
func AllTopics() []Topic {
	return []Topic{Computing, Humanities, Science, Education, General}
}

// Rule pairs a topic with the keywords that select it. Rules are evaluated in
// slice order, so an earlier rule always beats a later one when a question
// contains keywords from both.
type Rule struct {
	Topic    Topic    `yaml:"topic"`
	Keywords []string `yaml:"keywords"`
}

// Ruleset is an ordered list of classification rules. The ordering is the
// tie-break policy; it must stay a slice, never a map.
type Ruleset []Rule

// DefaultRuleset returns the built-in classification table.
func DefaultRuleset() Ruleset {
	return Ruleset{
		{Topic: Computing, Keywords: []string{"variable", "python", "code", "function", "loop"}},
		{Topic: Humanities, Keywords: []string{"history", "war", "date", "king", "empire"}},
		{Topic: Science, Keywords: []string{"physics", "chemistry", "biology", "gravity", "atom", "energy"}},
		{Topic: Education, Keywords: []string{"teach", "class", "exam", "grade"}},
	}
}

// Classify returns the topic of the first rule with any keyword contained in
// the lower-cased text. Unmatched input, including empty text, is General.
func (rs Ruleset) Classify(text string) Topic {
	lowered := strings.ToLower(text)
	for _, rule := range rs {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(lowered, kw) {
				return rule.Topic
			}
		}
	}
	return General
}

// Topics returns the rule topics in table order, with General appended if no
// rule names it. Used to render complete distributions.
func (rs Ruleset) Topics() []Topic {
	var out []Topic
	seen := make(map[Topic]bool)
	for _, rule := range rs {
		if !seen[rule.Topic] {
			seen[rule.Topic] = true
			out = append(out, rule.Topic)
		}
	}
	if !seen[General] {
		out = append(out, General)
	}
	return out
}

// ParseTopic resolves a user-supplied filter value to a Topic. The match is
// case-insensitive. Unknown values and the "All" sentinel report ok=false,
// which callers treat as "no filter".
func ParseTopic(s string) (Topic, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, FilterAll) {
		return "", false
	}
	for _, t := range AllTopics() {
		if strings.EqualFold(string(t), s) {
			return t, true
		}
	}
	return "", false
}
