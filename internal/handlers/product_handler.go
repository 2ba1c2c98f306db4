package handlers

import (
	"log/slog"

	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StockAdjustmentRequest is the body of PATCH /products/:id/stock.
type StockAdjustmentRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"max=200"`
}

// StockCountRequest is the body of PUT /products/:id/stock.
type StockCountRequest struct {
	Stock  *int   `json:"stock" validate:"required"`
	Reason string `json:"reason" validate:"max=200"`
}

// ProductHandler handles HTTP requests for products, categories and reports.
type ProductHandler struct {
	service           *services.ProductService
	validate          *validator.Validate
	lowStockThreshold int
	logger            *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, lowStockThreshold int, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		service:           service,
		validate:          validator.New(),
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// RegisterRoutes registers the product routes. Deleting requires the admin role.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id/stock", h.HandleAdjustStock)
	productRoutes.Put("/:id/stock", h.HandleSetStock)
	productRoutes.Delete("/:id", middleware.RequireRole(models.RoleAdmin), h.HandleDeleteProduct)

	router.Get("/categories", h.HandleGetCategories)

	reportRoutes := router.Group("/reports")
	reportRoutes.Get("/summary", h.HandleSummary)
	reportRoutes.Get("/low-stock", h.HandleLowStock)
}

// HandleGetProducts lists all products, or those of ?category=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	var (
		products []*models.Product
		err      error
	)
	if category := c.Query("category"); category != "" {
		products, err = h.service.ListByCategory(c.UserContext(), category)
	} else {
		products, err = h.service.ListProducts(c.UserContext())
	}
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve product", err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product. Field rules are enforced by the
// product model, so violations come back as 422 with the model's message.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.logger, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces every field of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}
	product, err := h.service.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.logger, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleAdjustStock adds or removes units.
func (h *ProductHandler) HandleAdjustStock(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req StockAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	product, err := h.service.AdjustStock(c.UserContext(), id, req.Delta, req.Reason)
	if err != nil {
		return respondError(c, h.logger, "Could not adjust stock", err)
	}
	return c.JSON(product)
}

// HandleSetStock overwrites the stock with a counted value.
func (h *ProductHandler) HandleSetStock(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req StockCountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	product, err := h.service.SetStock(c.UserContext(), id, *req.Stock, req.Reason)
	if err != nil {
		return respondError(c, h.logger, "Could not set stock", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "Could not delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetCategories returns the suggested categories and the ones in use.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve categories", err)
	}
	return c.JSON(fiber.Map{
		"suggested": models.SuggestedCategories,
		"in_use":    summary.Categories,
	})
}

// HandleSummary returns the inventory summary.
func (h *ProductHandler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not build summary", err)
	}
	return c.JSON(summary)
}

// HandleLowStock lists products under ?threshold= units, defaulting to the
// configured threshold.
func (h *ProductHandler) HandleLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", h.lowStockThreshold)
	if threshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "threshold must not be negative"})
	}
	products, err := h.service.LowStock(c.UserContext(), threshold)
	if err != nil {
		return respondError(c, h.logger, "Could not build low stock report", err)
	}
	return c.JSON(fiber.Map{
		"threshold": threshold,
		"products":  products,
	})
}
