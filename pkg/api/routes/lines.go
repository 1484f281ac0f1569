package routes

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/trainboard/pkg/ctdf"
	"github.com/travigo/trainboard/pkg/geckoboard"
)

type ArrivalsBoard interface {
	Board(ctx context.Context) []*ctdf.Arrival
}

type linesRouter struct {
	lines []ctdf.Line
	board ArrivalsBoard
}

func LinesRouter(router fiber.Router, lines []ctdf.Line, board ArrivalsBoard) {
	l := &linesRouter{
		lines: lines,
		board: board,
	}

	router.Get("/", l.listLines)
	router.Get("/:code", l.getLineWidget)
	router.Get("/:code/arrivals", l.getLineArrivals)
}

func (l *linesRouter) listLines(c *fiber.Ctx) error {
	return c.JSON(l.lines)
}

func (l *linesRouter) getLineWidget(c *fiber.Ctx) error {
	line, ok := l.findLine(c.Params("code"))
	if !ok {
		return lineNotFound(c)
	}

	grouped := ctdf.GroupArrivalsByDirection(l.board.Board(c.UserContext()), line.Code)

	html, err := geckoboard.RenderLine(line, grouped)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Type("html")
	return c.SendString(html)
}

func (l *linesRouter) getLineArrivals(c *fiber.Ctx) error {
	line, ok := l.findLine(c.Params("code"))
	if !ok {
		return lineNotFound(c)
	}

	return c.JSON(ctdf.GroupArrivalsByDirection(l.board.Board(c.UserContext()), line.Code))
}

func (l *linesRouter) findLine(code string) (ctdf.Line, bool) {
	for _, line := range l.lines {
		if strings.EqualFold(line.Code, code) {
			return line, true
		}
	}

	return ctdf.Line{}, false
}

func lineNotFound(c *fiber.Ctx) error {
	c.SendStatus(fiber.StatusNotFound)
	return c.JSON(fiber.Map{
		"error": "Could not find Line matching Line Code",
	})
}
