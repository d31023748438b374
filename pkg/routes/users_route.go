package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/servicepro/servicepro-backend/app/controllers"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
)

func RegisterUserRoutes(app *fiber.App) {
	// Public routes
	app.Post("/signup", controllers.UserSignUp)
	app.Post("/signin", controllers.UserSignIn)
	app.Post("/signin/google", controllers.UserSignInWithGoogle)
	app.Post("/verify-otp", controllers.UserVerifyOTP)
	app.Post("/refresh", controllers.RefreshToken)
	app.Get("/users/:id", controllers.GetUserPublic)

	// Session introspection
	app.Post("/logout", middleware.JWTProtected(), controllers.UserLogout)
	app.Get("/me", middleware.JWTProtected(), controllers.Me)
	app.Put("/me", middleware.JWTProtected(), controllers.UpdateMe)
}
