package controller

import (
	"errors"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/benbeisheim/checkers-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type BoardController struct {
	boardService *service.BoardService
}

func NewBoardController(boardService *service.BoardService) *BoardController {
	return &BoardController{boardService: boardService}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrBoardNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrInvalidPosition),
		errors.Is(err, model.ErrInvalidPiece),
		errors.Is(err, model.ErrInvalidBoard):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func parseCreateRequest(c *fiber.Ctx) (service.CreateBoardRequest, error) {
	var req service.CreateBoardRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return req, nil
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	req, err := parseCreateRequest(c)
	if err != nil {
		return err
	}

	boardID, err := bc.boardService.CreateBoard(req)
	if err != nil {
		return respondError(c, err)
	}
	log.Infof("client %v created board %s", c.Locals("clientID"), boardID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Board created",
		"board_id": boardID,
	})
}

func (bc *BoardController) GetBoard(c *fiber.Ctx) error {
	state, err := bc.boardService.GetBoardState(c.Params("boardId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

func (bc *BoardController) ResetBoard(c *fiber.Ctx) error {
	req, err := parseCreateRequest(c)
	if err != nil {
		return err
	}
	if err := bc.boardService.ResetBoard(c.Params("boardId"), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Board reset",
	})
}

func (bc *BoardController) SetSquare(c *fiber.Ctx) error {
	var req model.SetSquareRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := bc.boardService.SetSquare(c.Params("boardId"), req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Square updated",
	})
}

func (bc *BoardController) GetMoves(c *fiber.Ctx) error {
	// missing or malformed coordinates fall back to -1 and fail validation
	pos := model.NewPosition(c.QueryInt("row", -1), c.QueryInt("col", -1))

	moves, err := bc.boardService.GetMoves(c.Params("boardId"), pos)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(moves)
}

func (bc *BoardController) DeleteBoard(c *fiber.Ctx) error {
	if err := bc.boardService.DeleteBoard(c.Params("boardId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ErrorHandler renders errors that escape handlers, including recovered
// panics, in the same JSON shape as handled ones.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
