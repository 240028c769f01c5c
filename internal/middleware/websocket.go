package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// BoardFinder reports whether a board can be observed
type BoardFinder interface {
	HasBoard(boardID string) bool
}

// WebSocketUpgrade lets only genuine upgrade requests for an existing board
// through to the websocket handler, so an unknown board is a plain 404
// instead of an upgraded connection that is closed straight away.
// Runs after EnsureClientID.
func WebSocketUpgrade(boards BoardFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		clientID, ok := c.Locals("clientID").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "client ID is required",
			})
		}

		boardID := c.Params("boardId")
		if !boards.HasBoard(boardID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "board not found",
			})
		}

		// locals are the only way to reach the handler's *websocket.Conn
		c.Locals("wsBoardID", boardID)
		c.Locals("wsClientID", clientID)
		return c.Next()
	}
}
