package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/preppal-io/prep-pal/domain/stock"
	"github.com/preppal-io/prep-pal/modules/inventory"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api/v1")
	api.Get("/state", m.getState)
	api.Post("/load", m.load)
	api.Post("/initialize", m.initialize)
	api.Post("/reset", m.reset)
	api.Put("/locale", m.setLocale)

	categories := api.Group("/categories")
	categories.Post("/", m.addCategory)
	categories.Put("/", m.saveCategories)
	categories.Patch("/:id", m.updateCategory)
	categories.Delete("/:id", m.deleteCategory)

	stockRoutes := api.Group("/stock")
	stockRoutes.Put("/", m.saveStock)
	stockRoutes.Post("/items", m.addStockItem)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// getState handles GET /api/v1/state.
func (m *APIModule) getState(c *fiber.Ctx) error {
	snap, err := m.inventory.Snapshot(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "state_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(snap)
}

// load handles POST /api/v1/load.
func (m *APIModule) load(c *fiber.Ctx) error {
	resp, err := m.inventory.Load(c.Context())
	return respond(c, resp, err, fiber.StatusOK)
}

// initialize handles POST /api/v1/initialize. An empty body selects the
// default household.
func (m *APIModule) initialize(c *fiber.Ctx) error {
	var req inventory.InitializeParams
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.Initialize(c.Context(), req)
	return respond(c, resp, err, fiber.StatusOK)
}

// reset handles POST /api/v1/reset.
func (m *APIModule) reset(c *fiber.Ctx) error {
	resp, err := m.inventory.Reset(c.Context())
	return respond(c, resp, err, fiber.StatusOK)
}

// setLocale handles PUT /api/v1/locale.
func (m *APIModule) setLocale(c *fiber.Ctx) error {
	var req LocaleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.SetLocale(c.Context(), req.Locale)
	return respond(c, resp, err, fiber.StatusOK)
}

// addCategory handles POST /api/v1/categories.
func (m *APIModule) addCategory(c *fiber.Ctx) error {
	var req inventory.NewCategory
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.AddCategory(c.Context(), req)
	return respond(c, resp, err, fiber.StatusCreated)
}

// saveCategories handles PUT /api/v1/categories.
func (m *APIModule) saveCategories(c *fiber.Ctx) error {
	var req inventory.SaveCategoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.SaveCategories(c.Context(), req.BaseCategories)
	return respond(c, resp, err, fiber.StatusOK)
}

// updateCategory handles PATCH /api/v1/categories/:id.
func (m *APIModule) updateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return invalidID(c)
	}
	var patch inventory.CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.UpdateCategory(c.Context(), id, patch)
	return respond(c, resp, err, fiber.StatusOK)
}

// deleteCategory handles DELETE /api/v1/categories/:id.
func (m *APIModule) deleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return invalidID(c)
	}
	resp, err := m.inventory.DeleteCategory(c.Context(), id)
	return respond(c, resp, err, fiber.StatusOK)
}

// saveStock handles PUT /api/v1/stock.
func (m *APIModule) saveStock(c *fiber.Ctx) error {
	var req stock.Stock
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.SaveStock(c.Context(), req)
	return respond(c, resp, err, fiber.StatusOK)
}

// addStockItem handles POST /api/v1/stock/items.
func (m *APIModule) addStockItem(c *fiber.Ctx) error {
	var req inventory.NewStockItem
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	resp, err := m.inventory.AddStockItem(c.Context(), req)
	return respond(c, resp, err, fiber.StatusCreated)
}

// respond maps an operation response onto the HTTP status and body.
func respond(c *fiber.Ctx, resp *inventory.OperationResponse, err error, okStatus int) error {
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "service_unavailable",
			Message: err.Error(),
		})
	}
	if resp.Success {
		return c.Status(okStatus).JSON(OperationResult{
			Success:  true,
			ID:       resp.ID,
			Snapshot: resp.Snapshot,
		})
	}

	status := fiber.StatusInternalServerError
	code := "backend_error"
	switch resp.ErrorKind {
	case inventory.ErrorInvalid:
		status, code = fiber.StatusBadRequest, "validation_error"
	case inventory.ErrorNotFound:
		status, code = fiber.StatusNotFound, "not_found"
	case inventory.ErrorPartialFailure:
		code = "partial_failure"
	case "":
		if resp.Error != "" {
			status, code = fiber.StatusServiceUnavailable, "service_unavailable"
		}
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:   code,
		Message: resp.Error,
	})
}

func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(v)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
	})
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "validation_error",
		Message: "Category ID must be a positive integer",
	})
}
