package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/queries"
	"github.com/servicepro/servicepro-backend/pkg/database"
)

func GetMetiers(c *fiber.Ctx) error {
	taxonomyQueries := queries.TaxonomyQueries{DB: database.DB}
	metiers, err := taxonomyQueries.GetMetiers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list metiers"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"metiers": metiers})
}

func GetCategoriesByMetier(c *fiber.Ctx) error {
	metierID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid metier id"})
	}

	taxonomyQueries := queries.TaxonomyQueries{DB: database.DB}
	categories, err := taxonomyQueries.GetCategoriesByMetier(metierID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list categories"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"categories": categories})
}

func GetSousServices(c *fiber.Ctx) error {
	taxonomyQueries := queries.TaxonomyQueries{DB: database.DB}
	sousServices, err := taxonomyQueries.GetSousServices(c.Query("metier"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list sous-services"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"sous_services": sousServices})
}
