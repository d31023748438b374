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

// CreateComplaint opens a dispute record. Either party can file one,
// optionally referencing a demande; only an admin mutates it afterwards.
func CreateComplaint(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.CreateComplaintRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.DemandeID != nil {
		demandeQueries := queries.DemandeQueries{DB: database.DB}
		if _, err := demandeQueries.GetDemandeByID(*req.DemandeID); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Demande not found"})
		}
	}

	complaint := &models.Complaint{
		ID:        uuid.New(),
		UserID:    userID,
		DemandeID: req.DemandeID,
		Subject:   req.Subject,
		Message:   req.Message,
		Statut:    models.ComplaintPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	complaintQueries := queries.ComplaintQueries{DB: database.DB}
	if err := complaintQueries.CreateComplaint(complaint); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create reclamation"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Reclamation created", "reclamation": complaint})
}

func GetMyComplaints(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	complaintQueries := queries.ComplaintQueries{DB: database.DB}
	complaints, err := complaintQueries.GetComplaintsByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list reclamations"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reclamations": complaints})
}
