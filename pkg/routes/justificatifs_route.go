package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
)

func RegisterJustificatifRoutes(app *fiber.App) {
	app.Post("/justificatifs", middleware.JWTProtected(), controllers.UploadJustificatif)
	app.Get("/justificatifs/status", middleware.JWTProtected(), controllers.GetJustificatifStatus)
}
