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

func optionsFromInputs(serviceID uuid.UUID, inputs []models.ServiceOptionInput) []models.ServiceOption {
	opts := make([]models.ServiceOption, 0, len(inputs))
	for _, in := range inputs {
		opts = append(opts, models.ServiceOption{
			ID:        uuid.New(),
			ServiceID: serviceID,
			Group:     in.Group,
			Name:      in.Name,
			Enabled:   in.Enabled,
			Price:     in.Price,
			Unit:      in.Unit,
		})
	}
	return opts
}

// CreateService persists the outcome of the publishing wizard. Intervenant
// only; coordinates are range-checked and options validated against the
// metier schema before anything is written.
func CreateService(c *fiber.Ctx) error {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}
	if tc.UserRole != utils.RoleIntervenant {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only intervenants can publish services"})
	}

	req := &models.CreateServiceRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !utils.IsValidMetier(req.Metier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid metier"})
	}
	if *req.Latitude < -90 || *req.Latitude > 90 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "latitude must be between -90 and 90"})
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "longitude must be between -180 and 180"})
	}
	if err := utils.ValidateServiceOptions(req.Metier, req.Options); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	taxonomyQueries := queries.TaxonomyQueries{DB: database.DB}
	if _, err := taxonomyQueries.GetSousServiceByID(req.SousServiceID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown sous-service"})
	}

	service := &models.Service{
		ID:            uuid.New(),
		UserID:        tc.UserID,
		Metier:        req.Metier,
		SousServiceID: req.SousServiceID,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		Price:         req.Price,
		PriceUnit:     req.PriceUnit,
		Days:          req.Days,
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	service.Options = optionsFromInputs(service.ID, req.Options)

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	if err := serviceQueries.CreateService(service); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create service"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Service published", "service": service})
}

func GetMyServices(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	services, err := serviceQueries.GetServicesByOwner(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list services"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"services": services})
}

func SearchServices(c *fiber.Ctx) error {
	f := models.ServiceFilter{
		Metier: c.Query("metier"),
		City:   c.Query("city"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}
	if f.Metier != "" && !utils.IsValidMetier(f.Metier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid metier"})
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	services, err := serviceQueries.SearchServices(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search services"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"services": services})
}

func GetService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	service, err := serviceQueries.GetServiceByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
	}

	return c.Status(fiber.StatusOK).JSON(service)
}

// requireServiceOwner loads a service and checks the caller owns it. When it
// returns false the error response has already been written and the handler
// must return nil.
func requireServiceOwner(c *fiber.Ctx, serviceID uuid.UUID) (models.Service, bool) {
	tc, err := utils.ExtractClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		return models.Service{}, false
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	service, err := serviceQueries.GetServiceByID(serviceID)
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
		return models.Service{}, false
	}
	if service.UserID != tc.UserID {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not the owner of this service"})
		return models.Service{}, false
	}
	return service, true
}

func UpdateService(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	service, ok := requireServiceOwner(c, serviceID)
	if !ok {
		return nil
	}

	req := &models.UpdateServiceRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var options []models.ServiceOption
	if req.Options != nil {
		if err := utils.ValidateServiceOptions(service.Metier, req.Options); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		options = optionsFromInputs(serviceID, req.Options)
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	if err := serviceQueries.UpdateService(serviceID, req, options); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Service updated"})
}

func ToggleService(c *fiber.Ctx) error {
	serviceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid service id"})
	}

	if _, ok := requireServiceOwner(c, serviceID); !ok {
		return nil
	}

	serviceQueries := queries.ServiceQueries{DB: database.DB}
	active, err := serviceQueries.ToggleActive(serviceID)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Service toggled", "active": active})
}
