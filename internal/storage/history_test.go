package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/twisty"
)

func TestScrambleRepository(t *testing.T) {
	repo := NewScrambleRepository(newSQLiteStore(t).DB())

	first, err := repo.Create([]twisty.Notation{twisty.R, twisty.UPrime}, true)
	require.NoError(t, err)
	second, err := repo.Create([]twisty.Notation{twisty.M}, false)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	got, err := repo.Get(first)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "R U'", got.Sequence)
	assert.Equal(t, 2, got.Length)
	assert.True(t, got.Completed)
	assert.Equal(t, []twisty.Notation{twisty.R, twisty.UPrime}, got.Moves())
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)

	list, err := repo.List(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ScrambleID, "newest first")
	assert.False(t, list[0].Completed)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	missing, err := repo.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMoveRepository(t *testing.T) {
	repo := NewMoveRepository(newSQLiteStore(t).DB())
	session := NewSessionID()
	now := time.Now()

	r, _ := twisty.MoveFor(twisty.L)
	turn := twisty.Turn{Requested: twisty.F, Move: r}
	require.NoError(t, repo.CreateBatch(session, []MoveRecord{NewMoveRecord(turn, 90, false, now)}))

	u, _ := twisty.MoveFor(twisty.U)
	require.NoError(t, repo.CreateBatch(session, []MoveRecord{
		NewMoveRecord(twisty.Turn{Requested: twisty.U, Move: u}, 0, false, now),
		NewMoveRecord(twisty.Turn{Requested: twisty.U, Move: u}, 0, false, now),
	}))
	other := NewSessionID()
	require.NoError(t, repo.CreateBatch(other, []MoveRecord{
		NewMoveRecord(twisty.Turn{Requested: twisty.U, Move: u}, 0, false, now),
	}))

	moves, err := repo.GetBySession(session)
	require.NoError(t, err)
	require.Len(t, moves, 3)
	for i, m := range moves {
		assert.Equal(t, i, m.MoveIndex)
	}
	assert.Equal(t, "F", moves[0].Requested)
	assert.Equal(t, "L", moves[0].Applied)
	assert.Equal(t, 90.0, moves[0].Heading)
	assert.Equal(t, []twisty.Notation{twisty.L, twisty.U, twisty.U}, Notations(moves))

	count, err := repo.Count(session)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	sessions, err := repo.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, other, sessions[0].SessionID, "latest first")
	assert.Equal(t, 1, sessions[0].Moves)
	assert.Equal(t, session, sessions[1].SessionID)
	assert.Equal(t, 3, sessions[1].Moves)
	assert.Equal(t, now.UnixMilli(), sessions[1].FirstTsMs)

	limited, err := repo.Sessions(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
