package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// mockQueryService is a test double for driving.QueryService.
type mockQueryService struct {
	answer domain.Answer
	err    error
}

func (m *mockQueryService) Ask(_ context.Context, _ string, _ int) (domain.Answer, error) {
	return m.answer, m.err
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(Model)
	require.True(t, ok)
	return model
}

func TestUpdate_AnswerReceived(t *testing.T) {
	m := sized(t, NewModel(context.Background(), &mockQueryService{}))
	m.asking = true

	updated, _ := m.Update(answerReceived{answer: domain.Answer{
		Text:       "restart the daemon",
		Sources:    []string{"ops.pdf"},
		ChunksUsed: 2,
		Model:      "gpt-4o-mini",
	}})
	model := updated.(Model)

	assert.False(t, model.asking)
	assert.Contains(t, model.content, "restart the daemon")
	assert.Contains(t, model.content, "ops.pdf")
}

func TestUpdate_AskFailed(t *testing.T) {
	m := sized(t, NewModel(context.Background(), &mockQueryService{}))
	m.asking = true

	updated, _ := m.Update(askFailed{err: errors.New("embedding unavailable")})
	model := updated.(Model)

	assert.False(t, model.asking)
	assert.Contains(t, model.View(), "embedding unavailable")
}

func TestUpdate_EnterIgnoresEmptyQuestion(t *testing.T) {
	m := sized(t, NewModel(context.Background(), &mockQueryService{}))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)

	assert.False(t, model.asking)
	assert.Nil(t, cmd)
}

func TestAskCommand(t *testing.T) {
	t.Run("successful query", func(t *testing.T) {
		m := NewModel(context.Background(), &mockQueryService{
			answer: domain.Answer{Text: "answer"},
		})

		msg := m.ask("question")()
		received, ok := msg.(answerReceived)
		require.True(t, ok)
		assert.Equal(t, "answer", received.answer.Text)
	})

	t.Run("failed query", func(t *testing.T) {
		m := NewModel(context.Background(), &mockQueryService{
			err: errors.New("index not built"),
		})

		msg := m.ask("question")()
		failed, ok := msg.(askFailed)
		require.True(t, ok)
		assert.Error(t, failed.err)
	})
}

func TestView_QuittingIsEmpty(t *testing.T) {
	m := NewModel(context.Background(), &mockQueryService{})
	m.quitting = true
	assert.Empty(t, m.View())
}
