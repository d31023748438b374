package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
)

func RegisterReviewRoutes(app *fiber.App) {
	app.Get("/reviews", controllers.GetUserReviews)
	app.Post("/reviews", middleware.JWTProtected(), controllers.CreateReview)
	app.Get("/my-reviews", middleware.JWTProtected(), controllers.GetMyReviews)
}
