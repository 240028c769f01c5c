package service

import (
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrBoardExists   = errors.New("board already exists")
)

type BoardManager struct {
	sessions map[string]*model.Session
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
	mu       sync.RWMutex
}

// NewBoardManager starts a reaper that drops sessions idle for longer than
// ttl, checking every interval. A zero ttl keeps sessions forever.
func NewBoardManager(ttl, interval time.Duration) *BoardManager {
	bm := &BoardManager{
		sessions: make(map[string]*model.Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	if ttl > 0 && interval > 0 {
		go bm.reapIdleSessions(interval)
	}

	return bm
}

func (bm *BoardManager) reapIdleSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-bm.done:
			return
		case now := <-ticker.C:
			bm.ReapIdle(now)
		}
	}
}

// ReapIdle removes every idle session and returns how many were dropped
func (bm *BoardManager) ReapIdle(now time.Time) int {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	reaped := 0
	for id, session := range bm.sessions {
		if session.IsIdle(bm.ttl, now) {
			delete(bm.sessions, id)
			reaped++
		}
	}
	if reaped > 0 {
		log.Infof("reaped %d idle boards, %d remain", reaped, len(bm.sessions))
	}
	return reaped
}

func (bm *BoardManager) Close() {
	bm.once.Do(func() { close(bm.done) })
}

func (bm *BoardManager) CreateBoard(boardID string, board *model.Board) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if _, exists := bm.sessions[boardID]; exists {
		return ErrBoardExists
	}

	bm.sessions[boardID] = model.NewSession(boardID, board)
	return nil
}

func (bm *BoardManager) GetBoard(boardID string) (*model.Session, error) {
	bm.mu.RLock()
	defer bm.mu.RUnlock()

	session, exists := bm.sessions[boardID]
	if !exists {
		return nil, ErrBoardNotFound
	}

	return session, nil
}

func (bm *BoardManager) DeleteBoard(boardID string) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if _, exists := bm.sessions[boardID]; !exists {
		return ErrBoardNotFound
	}
	delete(bm.sessions, boardID)
	return nil
}

func (bm *BoardManager) Size() int {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return len(bm.sessions)
}

func (bm *BoardManager) RegisterConnection(boardID string, clientID string, conn *websocket.Conn) error {
	session, err := bm.GetBoard(boardID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(clientID, conn)
}

func (bm *BoardManager) UnregisterConnection(boardID string, clientID string, conn *websocket.Conn) {
	session, err := bm.GetBoard(boardID)
	if err != nil {
		return
	}
	session.UnregisterConnection(clientID, conn)
}
