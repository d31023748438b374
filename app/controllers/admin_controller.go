package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
	"github.com/servicepro/servicepro-backend/app/queries"
	"github.com/servicepro/servicepro-backend/pkg/database"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

// Back-office handlers. Role enforcement happens in the route group via
// middleware.RoleRequired(utils.RoleAdmin); handlers only do the work.

func AdminStats(c *fiber.Ctx) error {
	adminQueries := queries.AdminQueries{DB: database.DB}
	stats, err := adminQueries.GetStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to aggregate stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

func AdminListUsers(c *fiber.Ctx) error {
	f := models.UserFilter{
		Role:  c.Query("role"),
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}
	if f.Role != "" && !utils.IsValidRole(f.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid role filter"})
	}
	if banned := c.Query("banned"); banned != "" {
		b := banned == "true"
		f.Banned = &b
	}

	userQueries := queries.UserQueries{DB: database.DB}
	users, err := userQueries.ListUsers(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

func adminSetUserFlag(c *fiber.Ctx, set func(q *queries.UserQueries, id uuid.UUID) error, message string) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	if err := set(&userQueries, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	notifyMissionEvent(userID, "account_moderated", fiber.Map{"action": message})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func AdminBanUser(c *fiber.Ctx) error {
	return adminSetUserFlag(c, func(q *queries.UserQueries, id uuid.UUID) error {
		return q.SetBanned(id, true)
	}, "User banned")
}

func AdminUnbanUser(c *fiber.Ctx) error {
	return adminSetUserFlag(c, func(q *queries.UserQueries, id uuid.UUID) error {
		return q.SetBanned(id, false)
	}, "User unbanned")
}

func AdminVerifyUser(c *fiber.Ctx) error {
	return adminSetUserFlag(c, func(q *queries.UserQueries, id uuid.UUID) error {
		return q.SetVerified(id, true)
	}, "User verified")
}

func AdminUnverifyUser(c *fiber.Ctx) error {
	return adminSetUserFlag(c, func(q *queries.UserQueries, id uuid.UUID) error {
		return q.SetVerified(id, false)
	}, "User unverified")
}

func AdminListServices(c *fiber.Ctx) error {
	serviceQueries := queries.ServiceQueries{DB: database.DB}
	services, err := serviceQueries.ListServices(c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list services"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"services": services})
}

func adminSetServiceArchived(c *fiber.Ctx, archived bool, message string) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	service, err := serviceQueries.GetServiceByID(serviceID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	if err := serviceQueries.SetArchived(serviceID, archived); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	notifyMissionEvent(service.UserID, "service_moderated", fiber.Map{"service_id": serviceID, "action": message})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func AdminArchiveService(c *fiber.Ctx) error {
	return adminSetServiceArchived(c, true, "Service archived")
}

func AdminActivateService(c *fiber.Ctx) error {
	return adminSetServiceArchived(c, false, "Service activated")
}

func AdminListDocuments(c *fiber.Ctx) error {
	statut := c.Query("statut")
	if statut != "" && statut != models.JustificatifEnAttente && statut != models.JustificatifValide && statut != models.JustificatifRejete {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid statut filter"})
	}

	justifQueries := queries.JustificatifQueries{DB: database.DB}
	docs, err := justifQueries.ListJustificatifs(statut, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list justificatifs"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"justificatifs": docs})
}

func adminReviewDocument(c *fiber.Ctx, statut, message string) error {
	docID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid document id"})
	}

	body := struct {
		Comment string `json:"comment"`
	}{}
	_ = c.BodyParser(&body)

	justifQueries := queries.JustificatifQueries{DB: database.DB}
	doc, err := justifQueries.GetJustificatifByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Justificatif not found"})
	}

	if err := justifQueries.SetStatut(docID, statut, body.Comment); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Validating the last pending document flips the user to verified.
	if statut == models.JustificatifValide {
		pending, err := justifQueries.CountPendingByUser(doc.UserID)
		if err == nil && pending == 0 {
			userQueries := queries.UserQueries{DB: database.DB}
			_ = userQueries.SetVerified(doc.UserID, true)
		}
	}

	notifyMissionEvent(doc.UserID, "justificatif_reviewed", fiber.Map{"justificatif_id": docID, "statut": statut})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message})
}

func AdminValidateDocument(c *fiber.Ctx) error {
	return adminReviewDocument(c, models.JustificatifValide, "Justificatif validated")
}

func AdminRejectDocument(c *fiber.Ctx) error {
	return adminReviewDocument(c, models.JustificatifRejete, "Justificatif rejected")
}

func AdminListComplaints(c *fiber.Ctx) error {
	complaintQueries := queries.ComplaintQueries{DB: database.DB}
	complaints, err := complaintQueries.ListComplaints(c.Query("statut"), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list reclamations"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reclamations": complaints})
}

func AdminRespondComplaint(c *fiber.Ctx) error {
	complaintID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid reclamation id"})
	}

	req := &models.RespondComplaintRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	complaintQueries := queries.ComplaintQueries{DB: database.DB}
	complaint, err := complaintQueries.GetComplaintByID(complaintID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reclamation not found"})
	}

	if err := complaintQueries.Respond(complaintID, req.Response, req.Statut); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	notifyMissionEvent(complaint.UserID, "reclamation_answered", fiber.Map{"reclamation_id": complaintID, "statut": req.Statut})
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Reclamation updated"})
}

func AdminListDemandes(c *fiber.Ctx) error {
	statut := c.Query("statut")
	if statut != "" && !utils.IsValidStatut(statut) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid statut filter"})
	}

	demandeQueries := queries.DemandeQueries{DB: database.DB}
	demandes, err := demandeQueries.ListDemandes(statut, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list demandes"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"demandes": demandes})
}
