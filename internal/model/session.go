package model

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrInvalidPiece        = errors.New("invalid piece")
	ErrDuplicateConnection = errors.New("connection already exists")
)

// Observer receives board updates; *websocket.Conn satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
}

// SessionConnections tracks the observers of one session
type SessionConnections struct {
	connections map[string]Observer // clientID -> observer
	mu          sync.RWMutex
	// held for a whole broadcast, from snapshot to last write, so observers
	// see states in edit order. Lock order: writeMu, then Session.mu.
	writeMu sync.Mutex
}

// Session is an analysis board: a board snapshot that clients edit and query.
// It never applies moves or tracks whose turn it is.
type Session struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	lastActive  time.Time
	connections *SessionConnections
}

type SessionState struct {
	ID    string     `json:"id"`
	Board BoardState `json:"boardState"`
	Black int        `json:"black"`
	White int        `json:"white"`
}

// SquareMoves answers a move query for one square. Regular is null for an
// empty square and [] for a blocked piece; Captures is null when no capture exists.
type SquareMoves struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
	Regular  []Move   `json:"regular"`
	Captures []Move   `json:"captures"`
}

type SetSquareRequest struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

func NewSession(id string, board *Board) *Session {
	return &Session{
		ID:          id,
		board:       board,
		lastActive:  time.Now(),
		connections: NewSessionConnections(),
	}
}

func NewSessionConnections() *SessionConnections {
	return &SessionConnections{
		connections: make(map[string]Observer),
	}
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return s.state()
}

func (s *Session) state() SessionState {
	return SessionState{
		ID:    s.ID,
		Board: s.board.State(),
		Black: s.board.Count(PlayerBlack),
		White: s.board.Count(PlayerWhite),
	}
}

// SetSquare validates client input before touching the board, the board
// itself treats bad positions as programmer errors.
func (s *Session) SetSquare(pos Position, piece *Piece) error {
	if !pos.IsValid(BoardSide) {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}
	if piece != nil {
		if !piece.Player.Valid() {
			return fmt.Errorf("%w: unknown player %q", ErrInvalidPiece, piece.Player)
		}
		if !isDarkSquare(pos) {
			return fmt.Errorf("%w: %s is a light square", ErrInvalidPiece, pos)
		}
	}

	s.mu.Lock()
	s.board.Set(pos, piece)
	s.lastActive = time.Now()
	s.mu.Unlock()

	go s.broadcastState()
	return nil
}

// Reset swaps in a new board and notifies observers
func (s *Session) Reset(board *Board) {
	s.mu.Lock()
	s.board = board
	s.lastActive = time.Now()
	s.mu.Unlock()

	go s.broadcastState()
}

func (s *Session) Moves(pos Position) (SquareMoves, error) {
	if !pos.IsValid(BoardSide) {
		return SquareMoves{}, fmt.Errorf("%w: %s", ErrInvalidPosition, pos)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	result := SquareMoves{Position: pos, Piece: s.board.Get(pos)}
	result.Regular, _ = s.board.RegularMoves(pos)
	result.Captures, _ = s.board.CaptureMoves(pos)
	log.Debugf("session %s: %s has %d regular and %d capture moves", s.ID, pos, len(result.Regular), len(result.Captures))
	return result, nil
}

// IsIdle reports whether nobody is watching and nothing touched the session for ttl
func (s *Session) IsIdle(ttl time.Duration, now time.Time) bool {
	s.connections.mu.RLock()
	watched := len(s.connections.connections) > 0
	s.connections.mu.RUnlock()
	if watched {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive) > ttl
}

// RegisterConnection adds conn as the observer for clientID. A second
// connection for the same client is refused and left for the caller to close.
func (s *Session) RegisterConnection(clientID string, conn Observer) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[clientID]; exists {
		s.connections.mu.Unlock()
		return ErrDuplicateConnection
	}
	s.connections.connections[clientID] = conn
	s.connections.mu.Unlock()
	log.Infof("session %s: registered connection for client %s", s.ID, clientID)

	go s.broadcastState()
	return nil
}

func (s *Session) UnregisterConnection(clientID string, conn Observer) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()

	// only drop the entry if it is still this connection
	if current, exists := s.connections.connections[clientID]; exists && current == conn {
		delete(s.connections.connections, clientID)
		log.Infof("session %s: unregistered connection for client %s", s.ID, clientID)
	}
}

// Send writes one message to conn, serialised with broadcasts.
func (s *Session) Send(conn Observer, msg ws.Message) error {
	s.connections.writeMu.Lock()
	defer s.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

// broadcastState snapshots the board only once it owns the writers, so a
// broadcast that writes later never carries an older state.
func (s *Session) broadcastState() {
	s.connections.writeMu.Lock()
	defer s.connections.writeMu.Unlock()

	s.mu.Lock()
	state := s.state()
	s.mu.Unlock()

	msg, err := ws.NewMessage(ws.MessageTypeBoardState, state)
	if err != nil {
		log.Errorf("session %s: failed to marshal state: %v", s.ID, err)
		return
	}

	s.connections.mu.RLock()
	active := make(map[string]Observer, len(s.connections.connections))
	for clientID, conn := range s.connections.connections {
		active[clientID] = conn
	}
	s.connections.mu.RUnlock()

	for clientID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("session %s: failed to send state to client %s: %v", s.ID, clientID, err)
			s.UnregisterConnection(clientID, conn)
		}
	}
}
