package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/benbeisheim/checkers-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	boardService *service.BoardService
}

func NewWebSocketController(boardService *service.BoardService) *WebSocketController {
	return &WebSocketController{
		boardService: boardService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	boardID, _ := c.Locals("wsBoardID").(string)
	clientID, _ := c.Locals("wsClientID").(string)

	if err := wsc.boardService.RegisterConnection(boardID, clientID, c); err != nil {
		log.Warnf("failed to register connection for board %s: %v", boardID, err)
		// not registered yet, so this is the only writer
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		c.Close()
		return
	}
	defer wsc.boardService.UnregisterConnection(boardID, clientID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error on board %s: %v", boardID, err)
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error on board %s: %v", boardID, err)
			wsc.send(boardID, c, ws.NewErrorMessage("invalid message"))
			continue
		}

		reply, err := wsc.handleMessage(boardID, msg)
		if err != nil {
			log.Debugf("handle error on board %s: %v", boardID, err)
			errMsg := ws.NewErrorMessage(err.Error())
			reply = &errMsg
		}
		if reply != nil {
			wsc.send(boardID, c, *reply)
		}
	}
}

// handleMessage returns the direct reply to msg, if any. State changes reach
// the sender through the session broadcast instead.
func (wsc *WebSocketController) handleMessage(boardID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeQuery:
		var pos model.Position
		if err := json.Unmarshal(msg.Payload, &pos); err != nil {
			return nil, err
		}
		moves, err := wsc.boardService.GetMoves(boardID, pos)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeMoves, moves)
		if err != nil {
			return nil, err
		}
		return &reply, nil

	case ws.MessageTypeSetSquare:
		var req model.SetSquareRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		return nil, wsc.boardService.SetSquare(boardID, req)

	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) send(boardID string, c *websocket.Conn, msg ws.Message) {
	if err := wsc.boardService.Send(boardID, c, msg); err != nil {
		log.Warnf("failed to write to board %s: %v", boardID, err)
	}
}
