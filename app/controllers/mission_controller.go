package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/queries"
	"github.com/servicepro/servicepro-backend/pkg/database"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

// GetMissions lists demandes targeting the caller's services, optionally
// filtered by statut.
func GetMissions(c *fiber.Ctx) error {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if tc.UserRole != utils.RoleIntervenant {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only intervenants have missions"})
	}

	statut := c.Query("statut")
	if statut != "" && !utils.IsValidStatut(statut) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid statut filter"})
	}

	demandeQueries := queries.DemandeQueries{DB: database.DB}
	missions, err := demandeQueries.GetMissionsForProvider(tc.UserID, statut)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list missions"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"missions": missions})
}

// transitionMission is the single entry point for accept/refuse/complete.
// It checks that the caller owns the target service, resolves the next
// status through the transition table, and performs a conditional update so
// a concurrent transition cannot apply twice.
func transitionMission(c *fiber.Ctx, action string) error {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	demandeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid mission id"})
	}

	demandeQueries := queries.DemandeQueries{DB: database.DB}
	demande, err := demandeQueries.GetDemandeByID(demandeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mission not found"})
	}

	provider, err := demandeQueries.GetProviderForDemande(demandeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Mission not found"})
	}
	if provider != tc.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not the provider of this mission"})
	}

	next, err := utils.NextStatut(demande.Statut, action)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	if err := demandeQueries.TransitionStatut(demandeID, demande.Statut, next); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	demande.Statut = next
	notifyMissionEvent(demande.ClientID, "mission_"+action, demande)
	notifyMissionEvent(provider, "mission_"+action, demande)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Mission " + next, "demande": demande})
}

func AcceptMission(c *fiber.Ctx) error {
	return transitionMission(c, utils.ActionAccept)
}

func RefuseMission(c *fiber.Ctx) error {
	return transitionMission(c, utils.ActionRefuse)
}

func CompleteMission(c *fiber.Ctx) error {
	return transitionMission(c, utils.ActionComplete)
}
