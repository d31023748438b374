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

// CreateReview posts a rating on a completed mission. The author must be a
// party to the demande; the direction is derived from which party they are,
// and each direction can review at most once.
func CreateReview(c *fiber.Ctx) error {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.CreateReviewRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	demandeQueries := queries.DemandeQueries{DB: database.DB}
	demande, err := demandeQueries.GetDemandeByID(req.DemandeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Demande not found"})
	}
	if demande.Statut != utils.StatutTermine {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Demande is not completed"})
	}

	provider, err := demandeQueries.GetProviderForDemande(demande.ID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Demande not found"})
	}

	var direction string
	var targetID uuid.UUID
	switch tc.UserID {
	case demande.ClientID:
		direction = models.ReviewOfIntervenant
		targetID = provider
	case provider:
		direction = models.ReviewOfClient
		targetID = demande.ClientID
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not a party to this demande"})
	}

	reviewQueries := queries.ReviewQueries{DB: database.DB}
	exists, err := reviewQueries.ExistsForDemandeDirection(demande.ID, direction)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check existing reviews"})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A review for this demande already exists"})
	}

	review := &models.Review{
		ID:          uuid.New(),
		DemandeID:   demande.ID,
		AuthorID:    tc.UserID,
		TargetID:    targetID,
		Direction:   direction,
		Ponctualite: req.Ponctualite,
		Proprete:    req.Proprete,
		Qualite:     req.Qualite,
		Note:        float64(req.Ponctualite+req.Proprete+req.Qualite) / 3,
		Comment:     req.Comment,
		CreatedAt:   time.Now(),
	}

	if err := reviewQueries.CreateReview(review); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	if err := userQueries.UpdateRating(targetID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update rating"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Review created", "review": review})
}

func GetUserReviews(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id query param required"})
	}

	reviewQueries := queries.ReviewQueries{DB: database.DB}
	reviews, err := reviewQueries.GetReviewsForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list reviews"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reviews": reviews})
}

func GetMyReviews(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	reviewQueries := queries.ReviewQueries{DB: database.DB}
	reviews, err := reviewQueries.GetReviewsByAuthor(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list reviews"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"reviews": reviews})
}
