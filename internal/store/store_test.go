package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coteach/internal/classify"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertScanRoundTrip(t *testing.T) {
	s := newTestStore(t)

	inserts := []struct {
		topic classify.Topic
		text  string
	}{
		{classify.Computing, "what is a python variable"},
		{classify.Humanities, "when was the war"},
		{classify.Computing, "explain a loop"},
	}

	var ids []int64
	for _, in := range inserts {
		rec, err := s.Insert(in.topic, in.text)
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	records, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, records, len(inserts))

	for i, rec := range records {
		assert.Equal(t, ids[i], rec.ID)
		assert.Equal(t, inserts[i].topic, rec.Topic)
		assert.Equal(t, inserts[i].text, rec.Text)
	}

	// Ids are strictly increasing in insertion order.
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestScanEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Insert(classify.General, "hello")
	require.NoError(t, err)
	_, err = s.Insert(classify.Science, "what is gravity")
	require.NoError(t, err)

	require.NoError(t, s.Clear())

	records, err := s.Scan()
	require.NoError(t, err)
	assert.Empty(t, records)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIDsContinueAfterClear(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Insert(classify.General, "before reset")
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	second, err := s.Insert(classify.General, "after reset")
	require.NoError(t, err)

	// AUTOINCREMENT keeps the counter across a Clear.
	assert.Greater(t, second.ID, first.ID)
}

func TestInsertUsesStoreClock(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	s, err := Open(":memory:", zap.NewNop(), WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)
	defer s.Close()

	rec, err := s.Insert(classify.Education, "when is the exam")
	require.NoError(t, err)
	assert.Equal(t, fixed, rec.Timestamp)

	records, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, fixed, records[0].Timestamp)
}

func TestTextStoredVerbatim(t *testing.T) {
	s := newTestStore(t)

	raw := "  WHY Does ThE LOOP   crash?? \"quotes\" and, commas  "
	rec, err := s.Insert(classify.Computing, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, rec.Text)

	records, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, raw, records[0].Text)
}

func TestDurabilityAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classroom.db")

	s, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	_, err = s.Insert(classify.Humanities, "who was the king")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Scan()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, classify.Humanities, records[0].Topic)
	assert.Equal(t, "who was the king", records[0].Text)
}

func TestClosedStore(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.Insert(classify.General, "too late")
	assert.ErrorIs(t, err, ErrClosed)

	_, err = s.Scan()
	assert.ErrorIs(t, err, ErrClosed)

	assert.ErrorIs(t, s.Clear(), ErrClosed)
}
