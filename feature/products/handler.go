package products

import (
	"errors"
	"io"

	"media-sync/core/logger"
	"media-sync/feature/products/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for product imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the product routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/products")
	group.Post("/import", h.HandleImport)
}

// HandleImport imports a product CSV.
// @Summary Import products from CSV
// @Description Imports a WooCommerce-style product CSV. Accepts a multipart upload under the "file" field, or the raw CSV as the request body. New SKUs are created, known SKUs are updated, rows without a SKU are skipped.
// @Tags products
// @Accept mpfd
// @Produce json
// @Success 200 {object} map[string]any "Import summary"
// @Failure 400 {object} map[string]string "Empty or malformed CSV"
// @Failure 500 {object} map[string]string "Systemic failure"
// @Router /products/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.requestCSV(c)
	if err != nil {
		l.Warn("Rejected product import", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	summary, err := h.service.ImportCSV(c.Context(), data)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			l.Warn("Rejected product import", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		l.Error("Product import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": summary,
	})
}

// requestCSV extracts the CSV payload, preferring a multipart "file" upload
// over the raw body.
func (h *Handler) requestCSV(c *fiber.Ctx) ([]byte, error) {
	if file, err := c.FormFile("file"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return nil, &models.ValidationError{Reason: "cannot open uploaded file"}
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, &models.ValidationError{Reason: "cannot read uploaded file"}
		}
		return data, nil
	}

	body := c.Body()
	if len(body) == 0 {
		return nil, &models.ValidationError{Reason: "no CSV data received"}
	}
	return body, nil
}
