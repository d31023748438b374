package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
)

func RegisterServiceRoutes(app *fiber.App) {
	// Public catalog
	app.Get("/services", controllers.SearchServices)
	app.Get("/services/:id", controllers.GetService)
	app.Get("/services/:id/disponibilites", controllers.GetDisponibilites)
	app.Get("/metiers", controllers.GetMetiers)
	app.Get("/metiers/:id/categories", controllers.GetCategoriesByMetier)
	app.Get("/sous-services", controllers.GetSousServices)

	// Provider management
	app.Get("/my-services", middleware.JWTProtected(), controllers.GetMyServices)
	app.Post("/services", middleware.JWTProtected(), controllers.CreateService)
	app.Put("/services/:id", middleware.JWTProtected(), controllers.UpdateService)
	app.Patch("/services/:id/toggle", middleware.JWTProtected(), controllers.ToggleService)

	// Availability
	app.Put("/services/:id/disponibilites/semaine", middleware.JWTProtected(), controllers.ReplaceWeeklyDisponibilites)
	app.Post("/services/:id/disponibilites/date", middleware.JWTProtected(), controllers.CreateDateDisponibilite)
	app.Delete("/disponibilites/:id", middleware.JWTProtected(), controllers.DeleteDisponibilite)
}
