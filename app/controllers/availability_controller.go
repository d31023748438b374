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

func GetDisponibilites(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	availQueries := queries.AvailabilityQueries{DB: database.DB}
	slots, err := availQueries.GetByService(serviceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list disponibilites"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"disponibilites": slots})
}

// ReplaceWeeklyDisponibilites swaps the full recurring week in one call, the
// way the availability editor submits it.
func ReplaceWeeklyDisponibilites(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	if _, ok := requireServiceOwner(c, serviceID); !ok {
		return nil
	}

	req := &models.ReplaceWeeklyRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slots := make([]models.Disponibilite, 0, len(req.Slots))
	for _, in := range req.Slots {
		if in.EndTime <= in.StartTime {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
		}
		slots = append(slots, models.Disponibilite{
			ID:        uuid.New(),
			ServiceID: serviceID,
			Kind:      models.DispoSemaine,
			Day:       in.Day,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}

	availQueries := queries.AvailabilityQueries{DB: database.DB}
	if err := availQueries.ReplaceWeekly(serviceID, slots); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Weekly disponibilites replaced", "disponibilites": slots})
}

func CreateDateDisponibilite(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	if _, ok := requireServiceOwner(c, serviceID); !ok {
		return nil
	}

	req := &models.DateSlotRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.EndTime <= req.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
	}

	availQueries := queries.AvailabilityQueries{DB: database.DB}
	slot, err := availQueries.CreateDateSlot(serviceID, date, req.StartTime, req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Disponibilite created", "disponibilite": slot})
}

func DeleteDisponibilite(c *fiber.Ctx) error {
	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid disponibilite id"})
	}

	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	availQueries := queries.AvailabilityQueries{DB: database.DB}
	owner, err := availQueries.GetSlotOwner(slotID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Disponibilite not found"})
	}
	if owner != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not the owner of this disponibilite"})
	}

	if err := availQueries.DeleteSlot(slotID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Disponibilite deleted"})
}
