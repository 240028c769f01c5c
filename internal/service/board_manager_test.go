package service

import (
	"testing"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardManagerCreateGetDelete(t *testing.T) {
	bm := NewBoardManager(0, 0)
	defer bm.Close()

	require.NoError(t, bm.CreateBoard("b1", model.NewBoard()))
	assert.ErrorIs(t, bm.CreateBoard("b1", model.NewBoard()), ErrBoardExists)

	session, err := bm.GetBoard("b1")
	require.NoError(t, err)
	assert.Equal(t, "b1", session.ID)
	assert.Equal(t, 1, bm.Size())

	require.NoError(t, bm.DeleteBoard("b1"))
	_, err = bm.GetBoard("b1")
	assert.ErrorIs(t, err, ErrBoardNotFound)
	assert.ErrorIs(t, bm.DeleteBoard("b1"), ErrBoardNotFound)
}

func TestBoardManagerReapIdle(t *testing.T) {
	bm := NewBoardManager(time.Minute, 0)
	defer bm.Close()

	require.NoError(t, bm.CreateBoard("b1", model.NewBoard()))
	require.NoError(t, bm.CreateBoard("b2", model.EmptyBoard()))

	assert.Zero(t, bm.ReapIdle(time.Now()))
	assert.Equal(t, 2, bm.ReapIdle(time.Now().Add(2*time.Minute)))
	assert.Zero(t, bm.Size())
}

func TestBoardManagerReaperLoop(t *testing.T) {
	bm := NewBoardManager(time.Nanosecond, 5*time.Millisecond)
	defer bm.Close()

	require.NoError(t, bm.CreateBoard("b1", model.NewBoard()))
	assert.Eventually(t, func() bool { return bm.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestBoardManagerCloseIsIdempotent(t *testing.T) {
	bm := NewBoardManager(time.Minute, time.Minute)
	bm.Close()
	assert.NotPanics(t, bm.Close)
}
