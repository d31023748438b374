package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
	"github.com/servicepro/servicepro-backend/app/queries"
	"github.com/servicepro/servicepro-backend/pkg/database"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

// CreateDemande records a client's ask against a listing. The desired date,
// when given, must be strictly in the future, and the request needs either a
// free-text description or at least one category selection.
func CreateDemande(c *fiber.Ctx) error {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if tc.UserRole != utils.RoleClient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only clients can create demandes"})
	}

	req := &models.CreateDemandeRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Description == "" && len(req.Categories) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A description or at least one category is required"})
	}

	var dateSouhaitee *time.Time
	if req.DateSouhaitee != "" {
		// Parse and compare in the same location, otherwise a demande dated
		// today slips through in any timezone ahead of UTC.
		d, err := time.ParseInLocation("2006-01-02", req.DateSouhaitee, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date_souhaitee format, use YYYY-MM-DD"})
		}
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if !d.After(today) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_souhaitee must be in the future"})
		}
		dateSouhaitee = &d
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	service, err := serviceQueries.GetServiceByID(req.ServiceID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}
	if !service.Active || service.Archived {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Service is not accepting demandes"})
	}

	demande := &models.Demande{
		ID:            uuid.New(),
		ClientID:      tc.UserID,
		ServiceID:     req.ServiceID,
		Description:   req.Description,
		Categories:    req.Categories,
		DateSouhaitee: dateSouhaitee,
		Address:       req.Address,
		City:          req.City,
		ProposedPrice: req.ProposedPrice,
		Statut:        utils.StatutEnAttente,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	demandeQueries := queries.DemandeQueries{DB: database.DB}
	if err := demandeQueries.CreateDemande(demande); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create demande"})
	}

	notifyMissionEvent(service.UserID, "demande_created", demande)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Demande created", "demande": demande})
}

func GetMyDemandes(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	demandeQueries := queries.DemandeQueries{DB: database.DB}
	demandes, err := demandeQueries.GetDemandesByClient(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list demandes"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"demandes": demandes})
}
