package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coteach/internal/service"
	"coteach/internal/store"
)

func newChatFixture(t *testing.T) *ChatModel {
	t.Helper()
	st, err := store.Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewChat(service.New(st, service.Options{}, zap.NewNop()))
}

func TestChatSubmitFlow(t *testing.T) {
	m := newChatFixture(t)

	m.input.SetValue("what is a python variable")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	require.Len(t, m.history, 1)
	assert.Equal(t, roleStudent, m.history[0].role)
	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())

	// Run the submit command synchronously and feed the result back.
	msg := cmd()
	done, ok := msg.(submitDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	m.Update(done)
	require.Len(t, m.history, 2)
	assert.Equal(t, roleCoteacher, m.history[1].role)
	assert.Contains(t, m.history[1].text, "Computing")
	assert.False(t, m.waiting)
}

func TestChatIgnoresEmptySubmit(t *testing.T) {
	m := newChatFixture(t)

	m.input.SetValue("   ")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.history)
}

func TestChatSessionIDAssigned(t *testing.T) {
	m := newChatFixture(t)
	assert.NotEmpty(t, m.sessionID)

	other := newChatFixture(t)
	assert.NotEqual(t, m.sessionID, other.sessionID)
}
