package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

func RegisterAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.JWTProtected(), middleware.RoleRequired(utils.RoleAdmin))

	admin.Get("/stats", controllers.AdminStats)

	admin.Get("/users", controllers.AdminListUsers)
	admin.Patch("/users/:id/ban", controllers.AdminBanUser)
	admin.Patch("/users/:id/unban", controllers.AdminUnbanUser)
	admin.Patch("/users/:id/verify", controllers.AdminVerifyUser)
	admin.Patch("/users/:id/unverify", controllers.AdminUnverifyUser)

	admin.Get("/services", controllers.AdminListServices)
	admin.Patch("/services/:id/archive", controllers.AdminArchiveService)
	admin.Patch("/services/:id/activate", controllers.AdminActivateService)

	admin.Get("/documents", controllers.AdminListDocuments)
	admin.Patch("/documents/:id/validate", controllers.AdminValidateDocument)
	admin.Patch("/documents/:id/reject", controllers.AdminRejectDocument)

	admin.Get("/reclamations", controllers.AdminListComplaints)
	admin.Patch("/reclamations/:id", controllers.AdminRespondComplaint)

	admin.Get("/demandes", controllers.AdminListDemandes)
}
