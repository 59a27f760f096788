// Package insights computes the faculty dashboard aggregates from a scan of
// the interaction store: totals, the dominant topic, last activity, per-topic
// counts and the recommended action for the dominant gap.
package insights

import (
	"time"

	"coteach/internal/classify"
	"coteach/internal/store"
)

// Summary describes the current state of the classroom feedback log.
// TopTopic and LastActivity are only meaningful when Total > 0.
type Summary struct {
	Total        int
	TopTopic     classify.Topic
	LastActivity time.Time
}

// HasData reports whether any interactions have been recorded.
func (s Summary) HasData() bool { return s.Total > 0 }

// Summarize computes the dashboard summary from records in insertion order.
// TopTopic is the mode of the topic sequence; among topics tied for the
// highest count, the one that first appeared earliest wins.
func Summarize(records []store.Interaction) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	counts := make(map[classify.Topic]int)
	firstSeen := make(map[classify.Topic]int)
	for i, rec := range records {
		if _, ok := firstSeen[rec.Topic]; !ok {
			firstSeen[rec.Topic] = i
		}
		counts[rec.Topic]++
	}

	var top classify.Topic
	bestCount := -1
	for topic, n := range counts {
		switch {
		case n > bestCount:
			top, bestCount = topic, n
		case n == bestCount && firstSeen[topic] < firstSeen[top]:
			top = topic
		}
	}

	// Records arrive in ascending id order, so the last one is the most
	// recently inserted.
	last := records[len(records)-1].Timestamp

	return Summary{Total: len(records), TopTopic: top, LastActivity: last}
}

// TopicCounts returns the number of records per topic. Every topic of the
// fixed set appears, absent ones with a zero count, so chart rendering sees a
// complete and stable distribution.
func TopicCounts(records []store.Interaction) map[classify.Topic]int {
	counts := make(map[classify.Topic]int, len(classify.AllTopics()))
	for _, t := range classify.AllTopics() {
		counts[t] = 0
	}
	for _, rec := range records {
		counts[rec.Topic]++
	}
	return counts
}

// RecommendationTable maps a topic to the suggested instructor action.
type RecommendationTable map[classify.Topic]string

// DefaultRecommendations returns the built-in action table.
func DefaultRecommendations() RecommendationTable {
	return RecommendationTable{
		classify.Computing:  "Critical gap: students are struggling with programming basics. Schedule a live coding workshop for variables and loops.",
		classify.Humanities: "Moderate gap: students are confused about timelines. Upload a visual timeline chart to the portal.",
		classify.Science:    "Concept gap: students are stuck on core science concepts. Run a hands-on lab demonstration next session.",
		classify.Education:  "Admin gap: students have exam and grading queries. Send an announcement clarifying the grading rubric.",
	}
}

// Recommendation looks up the action for a topic. Topics without a specific
// entry, including the empty topic of an empty summary, get the monitoring
// text.
func (t RecommendationTable) Recommendation(topic classify.Topic) string {
	if advice, ok := t[topic]; ok {
		return advice
	}
	return "Monitoring: no specific trend detected yet."
}
