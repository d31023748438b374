package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
)

func RegisterComplaintRoutes(app *fiber.App) {
	app.Post("/reclamations", middleware.JWTProtected(), controllers.CreateComplaint)
	app.Get("/reclamations", middleware.JWTProtected(), controllers.GetMyComplaints)
}
