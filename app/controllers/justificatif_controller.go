package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/servicepro/servicepro-backend/app/models"
	"github.com/servicepro/servicepro-backend/app/queries"
	"github.com/servicepro/servicepro-backend/pkg/database"
	"github.com/servicepro/servicepro-backend/pkg/utils"
)

// UploadJustificatif stores an identity/qualification document on disk and
// records it pending admin review. Storage scanning is out of scope; the
// file lands under UPLOAD_DIR as-is.
func UploadJustificatif(c *fiber.Ctx) error {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if tc.UserRole != utils.RoleIntervenant {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only intervenants upload justificatifs"})
	}

	docType := c.FormValue("doc_type")
	if docType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "doc_type is required"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare upload directory"})
	}

	id := uuid.New()
	storedName := fmt.Sprintf("%s%s", id.String(), filepath.Ext(file.Filename))
	storedPath := filepath.Join(uploadDir, storedName)
	if err := c.SaveFile(file, storedPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store file"})
	}

	doc := &models.Justificatif{
		ID:        id,
		UserID:    tc.UserID,
		DocType:   docType,
		FilePath:  storedPath,
		FileName:  file.Filename,
		Statut:    models.JustificatifEnAttente,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	justifQueries := queries.JustificatifQueries{DB: database.DB}
	if err := justifQueries.CreateJustificatif(doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record justificatif"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Justificatif uploaded", "justificatif": doc})
}

// GetJustificatifStatus lists the caller's documents with their review
// status.
func GetJustificatifStatus(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	justifQueries := queries.JustificatifQueries{DB: database.DB}
	docs, err := justifQueries.GetJustificatifsByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list justificatifs"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"justificatifs": docs})
}
