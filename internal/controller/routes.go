package controller

import (
	"github.com/benbeisheim/checkers-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST and WebSocket endpoints on app
func SetupRoutes(app *fiber.App, boardController *BoardController, wsController *WebSocketController, wsConfig websocket.Config) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// WebSocket routes
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Get("/ws/board/:boardId", middleware.WebSocketUpgrade(wsController.boardService), websocket.New(wsController.HandleConnection, wsConfig))

	// REST routes
	api := app.Group("/api", middleware.EnsureClientID())

	boardRoutes := api.Group("/board")
	boardRoutes.Post("", boardController.CreateBoard)
	boardRoutes.Get("/:boardId", boardController.GetBoard)
	boardRoutes.Put("/:boardId", boardController.ResetBoard)
	boardRoutes.Delete("/:boardId", boardController.DeleteBoard)
	boardRoutes.Put("/:boardId/square", boardController.SetSquare)
	boardRoutes.Get("/:boardId/moves", boardController.GetMoves)
}
