package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmdorsey/dallas-ai-bootcamp-legislative-project-sub000/models"
)

func activeCount(s *Store) int {
	count := 0
	for _, conv := range s.List() {
		if conv.IsActive {
			count++
		}
	}
	return count
}

func TestNewSeedsOneActiveConversation(t *testing.T) {
	s := New()

	items := s.List()
	require.Len(t, items, 1)
	assert.True(t, items[0].IsActive)
	assert.Equal(t, models.DefaultTitle, items[0].Title)
	assert.Empty(t, items[0].Messages)
}

func TestCreateInsertsAtFrontAndActivates(t *testing.T) {
	s := New()
	first := s.List()[0]

	created := s.Create()

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, created.ID, items[0].ID)
	assert.True(t, items[0].IsActive)
	assert.Equal(t, first.ID, items[1].ID)
	assert.False(t, items[1].IsActive)
	assert.Equal(t, 1, activeCount(s))
}

func TestSelectMovesActiveFlag(t *testing.T) {
	s := New()
	first := s.List()[0]
	s.Create()

	require.NoError(t, s.Select(first.ID))

	for _, conv := range s.List() {
		assert.Equal(t, conv.ID == first.ID, conv.IsActive)
	}
	assert.Equal(t, 1, activeCount(s))
}

func TestSelectUnknownIDReturnsNotFound(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Select("no-such-id"), ErrNotFound)
	assert.Equal(t, 1, activeCount(s))
}

func TestRenameRejectsBlankTitles(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	assert.ErrorIs(t, s.Rename(id, ""), ErrBlankTitle)
	assert.ErrorIs(t, s.Rename(id, "   "), ErrBlankTitle)
	assert.Equal(t, models.DefaultTitle, s.List()[0].Title)
}

func TestRenameCapsLength(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	require.NoError(t, s.Rename(id, strings.Repeat("x", 80)))
	assert.Len(t, s.List()[0].Title, 50)
}

func TestDeleteActiveSelectsFirstRemaining(t *testing.T) {
	s := New()
	oldest := s.List()[0]
	middle := s.Create()
	newest := s.Create()

	s.Delete(newest.ID)

	items := s.List()
	require.Len(t, items, 2)
	assert.Equal(t, middle.ID, items[0].ID)
	assert.True(t, items[0].IsActive)
	assert.Equal(t, oldest.ID, items[1].ID)
	assert.Equal(t, 1, activeCount(s))
}

func TestDeleteInactiveKeepsActive(t *testing.T) {
	s := New()
	oldest := s.List()[0]
	newest := s.Create()

	s.Delete(oldest.ID)

	items := s.List()
	require.Len(t, items, 1)
	assert.Equal(t, newest.ID, items[0].ID)
	assert.True(t, items[0].IsActive)
}

func TestDeleteLastSynthesizesReplacement(t *testing.T) {
	s := New()
	only := s.List()[0]

	s.Delete(only.ID)

	items := s.List()
	require.Len(t, items, 1)
	assert.NotEqual(t, only.ID, items[0].ID)
	assert.True(t, items[0].IsActive)
	assert.Equal(t, models.DefaultTitle, items[0].Title)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	victim := s.Create()

	s.Delete(victim.ID)
	before := s.List()
	s.Delete(victim.ID)
	after := s.List()

	assert.Equal(t, len(before), len(after))
	assert.Equal(t, 1, activeCount(s))
}

func TestActiveSingletonSurvivesOperationSequences(t *testing.T) {
	s := New()

	a := s.Create()
	b := s.Create()
	c := s.Create()
	require.NoError(t, s.Select(a.ID))
	s.Delete(a.ID)
	s.Delete(b.ID)
	require.NoError(t, s.Select(c.ID))
	s.Delete(c.ID)
	s.Create()

	assert.NotEmpty(t, s.List())
	assert.Equal(t, 1, activeCount(s))
}

func TestAppendUserMessageDerivesTitleOnce(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	first := "Who is my state representative and can you tell me about HB121?"
	_, err := s.AppendUserMessage(id, first)
	require.NoError(t, err)

	conv, err := s.Get(id)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(conv.Title, "..."))
	assert.LessOrEqual(t, len(strings.TrimSuffix(conv.Title, "...")), 30)
	assert.True(t, strings.HasPrefix(first, strings.TrimSuffix(conv.Title, "...")))

	derived := conv.Title
	_, err = s.AppendUserMessage(id, "A completely different second message")
	require.NoError(t, err)

	conv, err = s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, derived, conv.Title)
}

func TestAppendUserMessageShortFirstMessageKeepsFullTitle(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	_, err := s.AppendUserMessage(id, "Tell me about HB121")
	require.NoError(t, err)

	conv, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Tell me about HB121", conv.Title)
}

func TestAppendUserMessageUpdatesPreview(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	long := strings.Repeat("q", 100)
	_, err := s.AppendUserMessage(id, long)
	require.NoError(t, err)

	conv, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("q", 80)+"...", conv.Preview)
}

func TestAppendAssistantMessageCarriesDirective(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	bills := []models.Bill{{ID: "HB_001.pdf", Name: "H B 001", Similarity: 48}}
	msg, err := s.AppendAssistantMessage(id, "Found relevant bills:", models.ShowBills(bills))
	require.NoError(t, err)
	assert.Equal(t, models.AssistantMessage, msg.Type)
	assert.Equal(t, models.DirectiveShowBills, msg.Directive.Kind)
	assert.Len(t, msg.Directive.Bills, 1)
}

func TestAppendToUnknownConversation(t *testing.T) {
	s := New()

	_, err := s.AppendUserMessage("missing", "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AppendAssistantMessage("missing", "hello", models.NoDirective())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBeginTurnRejectsConcurrentTurnSameConversation(t *testing.T) {
	s := New()
	id := s.List()[0].ID

	require.NoError(t, s.BeginTurn(id))
	assert.ErrorIs(t, s.BeginTurn(id), ErrTurnInFlight)

	s.EndTurn(id)
	assert.NoError(t, s.BeginTurn(id))
}

func TestBeginTurnIndependentAcrossConversations(t *testing.T) {
	s := New()
	first := s.List()[0].ID
	second := s.Create().ID

	require.NoError(t, s.BeginTurn(first))
	assert.NoError(t, s.BeginTurn(second))

	s.EndTurn(first)
	s.EndTurn(second)
}
