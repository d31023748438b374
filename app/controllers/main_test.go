package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/pkg/database"
	"github.com/servicepro/servicepro-backend/pkg/middleware"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// newMockDB swaps the package-level connection for a sqlmock one.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		db.Close()
	})
	return mock
}

func newTestApp() *fiber.App {
	app := fiber.New()

	app.Post("/signin", UserSignIn)
	app.Post("/demandes", middleware.JWTProtected(), CreateDemande)
	app.Get("/missions", middleware.JWTProtected(), GetMissions)
	app.Patch("/missions/:id/accept", middleware.JWTProtected(), AcceptMission)
	app.Patch("/missions/:id/refuse", middleware.JWTProtected(), RefuseMission)
	app.Patch("/missions/:id/complete", middleware.JWTProtected(), CompleteMission)
	app.Post("/reviews", middleware.JWTProtected(), CreateReview)
	app.Post("/services", middleware.JWTProtected(), CreateService)
	app.Put("/services/:id", middleware.JWTProtected(), UpdateService)
	app.Patch("/services/:id/toggle", middleware.JWTProtected(), ToggleService)
	app.Put("/services/:id/disponibilites/semaine", middleware.JWTProtected(), ReplaceWeeklyDisponibilites)
	app.Post("/services/:id/disponibilites/date", middleware.JWTProtected(), CreateDateDisponibilite)

	return app
}

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   userID.String(),
		"email":     "user@example.com",
		"user_role": role,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, target, token, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
