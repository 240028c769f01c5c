package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     bool
}

func (o *recordingObserver) WriteJSON(v interface{}) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail {
		return errors.New("connection closed")
	}
	o.messages = append(o.messages, v.(ws.Message))
	return nil
}

// lastState decodes the most recent boardState message
func (o *recordingObserver) lastState() (SessionState, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.messages) == 0 {
		return SessionState{}, false
	}
	last := o.messages[len(o.messages)-1]
	if last.Type != ws.MessageTypeBoardState {
		return SessionState{}, false
	}
	var state SessionState
	if err := json.Unmarshal(last.Payload, &state); err != nil {
		return SessionState{}, false
	}
	return state, true
}

func TestSessionSetSquareValidatesInput(t *testing.T) {
	session := NewSession("s1", EmptyBoard())

	err := session.SetSquare(NewPosition(8, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	man := NewPiece(PlayerBlack)
	err = session.SetSquare(NewPosition(0, 0), &man)
	assert.ErrorIs(t, err, ErrInvalidPiece)

	err = session.SetSquare(NewPosition(0, 1), &Piece{Player: "green"})
	assert.ErrorIs(t, err, ErrInvalidPiece)

	require.NoError(t, session.SetSquare(NewPosition(0, 1), &man))
	state := session.State()
	assert.Equal(t, 1, state.Black)
	assert.Equal(t, 0, state.White)
	assert.Equal(t, &man, state.Board.Board[0][1])
}

func TestSessionMoves(t *testing.T) {
	session := NewSession("s1", NewBoard())

	moves, err := session.Moves(NewPosition(2, 3))
	require.NoError(t, err)
	require.NotNil(t, moves.Piece)
	assert.Equal(t, PlayerBlack, moves.Piece.Player)
	assert.Len(t, moves.Regular, 2)
	assert.Nil(t, moves.Captures)

	moves, err = session.Moves(NewPosition(3, 2))
	require.NoError(t, err)
	assert.Nil(t, moves.Piece)
	assert.Nil(t, moves.Regular)

	_, err = session.Moves(NewPosition(-1, 0))
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestSessionReset(t *testing.T) {
	session := NewSession("s1", NewBoard())
	session.Reset(EmptyBoard())

	state := session.State()
	assert.Zero(t, state.Black)
	assert.Zero(t, state.White)
}

func TestSessionIsIdle(t *testing.T) {
	session := NewSession("s1", NewBoard())
	now := time.Now()

	assert.False(t, session.IsIdle(time.Minute, now))
	assert.True(t, session.IsIdle(time.Minute, now.Add(2*time.Minute)))
}

func TestSessionBroadcastEndsOnLatestState(t *testing.T) {
	session := NewSession("s1", EmptyBoard())
	observer := &recordingObserver{}
	require.NoError(t, session.RegisterConnection("c1", observer))

	black := NewPiece(PlayerBlack)
	white := NewPiece(PlayerWhite)
	for row := 0; row < BoardSide; row++ {
		col := (row + 1) % 2
		require.NoError(t, session.SetSquare(NewPosition(row, col), &black))
		require.NoError(t, session.SetSquare(NewPosition(row, col), &white))
		require.NoError(t, session.SetSquare(NewPosition(row, col+2), &black))
	}
	session.Reset(NewBoard())
	require.NoError(t, session.SetSquare(NewPosition(2, 1), nil))

	final := session.State()
	assert.Eventually(t, func() bool {
		state, ok := observer.lastState()
		return ok && assert.ObjectsAreEqual(final.Board, state.Board)
	}, time.Second, 5*time.Millisecond)

	// nothing sent after convergence may roll the board back
	time.Sleep(20 * time.Millisecond)
	state, ok := observer.lastState()
	require.True(t, ok)
	assert.Equal(t, final.Board, state.Board)
	assert.Equal(t, 11, state.Black)
}

func TestSessionRejectsDuplicateConnection(t *testing.T) {
	session := NewSession("s1", NewBoard())
	first := &recordingObserver{}
	require.NoError(t, session.RegisterConnection("c1", first))

	err := session.RegisterConnection("c1", &recordingObserver{})
	assert.ErrorIs(t, err, ErrDuplicateConnection)
	assert.False(t, session.IsIdle(0, time.Now().Add(time.Hour)))

	session.UnregisterConnection("c1", first)
	assert.True(t, session.IsIdle(0, time.Now().Add(time.Hour)))
}

func TestSessionDropsFailingObserver(t *testing.T) {
	session := NewSession("s1", NewBoard())
	require.NoError(t, session.RegisterConnection("c1", &recordingObserver{fail: true}))

	assert.Eventually(t, func() bool {
		return session.IsIdle(0, time.Now().Add(time.Hour))
	}, time.Second, 5*time.Millisecond)
}
