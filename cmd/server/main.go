package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/checkers-backend/internal/config"
	"github.com/benbeisheim/checkers-backend/internal/controller"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		ErrorHandler: controller.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	boardManager := service.NewBoardManager(cfg.SessionTTL, cfg.ReapInterval)
	defer boardManager.Close()
	boardService := service.NewBoardService(boardManager)

	// Initialize controllers
	boardController := controller.NewBoardController(boardService)
	wsController := controller.NewWebSocketController(boardService)

	controller.SetupRoutes(app, boardController, wsController, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         strings.Split(cfg.AllowOrigins, ","),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
