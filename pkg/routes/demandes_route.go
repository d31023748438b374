package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
)

func RegisterDemandeRoutes(app *fiber.App) {
	app.Post("/demandes", middleware.JWTProtected(), controllers.CreateDemande)
	app.Get("/demandes", middleware.JWTProtected(), controllers.GetMyDemandes)

	// Mission lifecycle, provider side
	app.Get("/missions", middleware.JWTProtected(), controllers.GetMissions)
	app.Patch("/missions/:id/accept", middleware.JWTProtected(), controllers.AcceptMission)
	app.Patch("/missions/:id/refuse", middleware.JWTProtected(), controllers.RefuseMission)
	app.Patch("/missions/:id/complete", middleware.JWTProtected(), controllers.CompleteMission)
}
