package insights

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"coteach/internal/classify"
	"coteach/internal/store"
)

func rec(id int64, topic classify.Topic, ts time.Time) store.Interaction {
	return store.Interaction{ID: id, Topic: topic, Timestamp: ts, Text: "q"}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.False(t, s.HasData())
	assert.Empty(t, s.TopTopic)
	assert.True(t, s.LastActivity.IsZero())
}

func TestSummarize(t *testing.T) {
	base := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	records := []store.Interaction{
		rec(1, classify.Computing, base),
		rec(2, classify.Humanities, base.Add(time.Minute)),
		rec(3, classify.Computing, base.Add(2*time.Minute)),
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, classify.Computing, s.TopTopic)
	assert.Equal(t, base.Add(2*time.Minute), s.LastActivity)
}

func TestSummarizeTieBreakFirstOccurrence(t *testing.T) {
	base := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	// Computing and Science tie at 3; every Computing record precedes the
	// first Science record, so Computing wins.
	var records []store.Interaction
	id := int64(1)
	for i := 0; i < 3; i++ {
		records = append(records, rec(id, classify.Computing, base))
		id++
	}
	for i := 0; i < 3; i++ {
		records = append(records, rec(id, classify.Science, base))
		id++
	}
	records = append(records, rec(id, classify.Education, base))

	s := Summarize(records)
	assert.Equal(t, 7, s.Total)
	assert.Equal(t, classify.Computing, s.TopTopic)
}

func TestSummarizeTieBreakInterleaved(t *testing.T) {
	base := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	// Science appears first, then the counts even out. First occurrence
	// decides, not rule-table order.
	records := []store.Interaction{
		rec(1, classify.Science, base),
		rec(2, classify.Computing, base),
		rec(3, classify.Computing, base),
		rec(4, classify.Science, base),
	}

	s := Summarize(records)
	assert.Equal(t, classify.Science, s.TopTopic)
}

func TestTopicCounts(t *testing.T) {
	base := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	records := []store.Interaction{
		rec(1, classify.Computing, base),
		rec(2, classify.Humanities, base),
		rec(3, classify.Computing, base),
	}

	got := TopicCounts(records)
	want := map[classify.Topic]int{
		classify.Computing:  2,
		classify.Humanities: 1,
		classify.Science:    0,
		classify.Education:  0,
		classify.General:    0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopicCounts mismatch (-want +got):\n%s", diff)
	}

	// Stable across calls for the same input.
	if diff := cmp.Diff(got, TopicCounts(records)); diff != "" {
		t.Errorf("TopicCounts unstable (-first +second):\n%s", diff)
	}
}

func TestRecommendation(t *testing.T) {
	table := DefaultRecommendations()

	assert.Contains(t, table.Recommendation(classify.Computing), "coding workshop")
	assert.Contains(t, table.Recommendation(classify.Humanities), "timeline chart")
	assert.Contains(t, table.Recommendation(classify.Science), "lab demonstration")
	assert.Contains(t, table.Recommendation(classify.Education), "grading rubric")

	// General and the empty topic fall through to the monitoring text.
	assert.Contains(t, table.Recommendation(classify.General), "no specific trend")
	assert.Contains(t, table.Recommendation(""), "no specific trend")
}
