package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/tasklist/internal/board"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/storage"
)

func TestDispatch(t *testing.T) {
	s, rec := newStore(t, storage.NewMemoryBackend())

	changed, err := s.Dispatch(CreateCommand{Input: CreateInput{Text: "A", List: board.ExistingTag("Work")}})
	require.NoError(t, err)
	assert.True(t, changed)
	id := s.Tasks()[0].ID

	for _, r := range []Request{
		{Action: ActionEdit, ID: id, Text: "A2"},
		{Action: ActionToggle, ID: id},
	} {
		cmd, err := ActionFor(r)
		require.NoError(t, err)
		changed, err := s.Dispatch(cmd)
		require.NoError(t, err)
		assert.True(t, changed, r.Action)
	}
	got, _ := s.Get(id)
	assert.Equal(t, "A2", got.Text)
	assert.True(t, got.IsCompleted)

	changed, err = s.Dispatch(FilterCommand{Filter: board.Named("Work")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, board.Named("Work"), rec.last().Filter)

	cmd, err := ActionFor(Request{Action: ActionDelete, ID: id, Confirm: AlwaysConfirm})
	require.NoError(t, err)
	changed, err = s.Dispatch(cmd)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, s.Tasks())
}

func TestDispatchReportsValidation(t *testing.T) {
	s, _ := newStore(t, storage.NewMemoryBackend())
	changed, err := s.Dispatch(CreateCommand{Input: CreateInput{Text: ""}})
	assert.False(t, changed)
	assert.True(t, clierr.HasCode(err, clierr.EmptyText))
}

func TestActionForUnknown(t *testing.T) {
	_, err := ActionFor(Request{Action: "archive", ID: 1})
	assert.True(t, clierr.HasCode(err, clierr.InvalidInput))
}
