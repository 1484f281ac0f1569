package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/trainboard/pkg/api/routes"
	"github.com/travigo/trainboard/pkg/ctdf"
)

func NewApp(lines []ctdf.Line, board routes.ArrivalsBoard) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.LinesRouter(webApp.Group("/lines"), lines, board)

	return webApp
}

func SetupServer(listen string, lines []ctdf.Line, board routes.ArrivalsBoard) error {
	return NewApp(lines, board).Listen(listen)
}
