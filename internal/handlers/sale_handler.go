package handlers

import (
	"log/slog"

	"tienda/internal/middleware"
	"tienda/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SaleRequest is the body of POST /sales.
type SaleRequest struct {
	Items []services.SaleLine `json:"items" validate:"required,min=1,dive"`
}

// SaleHandler handles HTTP requests for sales.
type SaleHandler struct {
	service  *services.SaleService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService, logger *slog.Logger) *SaleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaleHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the sale routes.
func (h *SaleHandler) RegisterRoutes(router fiber.Router) {
	saleRoutes := router.Group("/sales")
	saleRoutes.Get("/", h.HandleGetSales)
	saleRoutes.Get("/:id", h.HandleGetSaleByID)
	saleRoutes.Post("/", h.HandleCreateSale)
}

// HandleGetSales lists sales, newest first.
func (h *SaleHandler) HandleGetSales(c *fiber.Ctx) error {
	sales, err := h.service.ListSales(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve sales", err)
	}
	return c.JSON(sales)
}

// HandleGetSaleByID retrieves a single sale.
func (h *SaleHandler) HandleGetSaleByID(c *fiber.Ctx) error {
	sale, err := h.service.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve sale", err)
	}
	return c.JSON(sale)
}

// HandleCreateSale records a sale on behalf of the authenticated staff member.
func (h *SaleHandler) HandleCreateSale(c *fiber.Ctx) error {
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	staff := ""
	if claims, ok := middleware.ClaimsFrom(c); ok {
		staff = claims.Username
	}
	sale, err := h.service.RecordSale(c.UserContext(), req.Items, staff)
	if err != nil {
		return respondError(c, h.logger, "Could not record sale", err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}
