package media

import (
	"errors"

	"media-sync/core/logger"
	"media-sync/feature/media/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for media sync.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the media routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/media")
	group.Post("/import", h.HandleImport)
	group.Get("/image-sizes", h.HandleImageSizes)
	group.Get("/:external_id", h.HandleGetMedia)
}

// HandleImport reconciles a declared media batch.
// @Summary Import external media
// @Description Reconciles a declared list of external media items against the tracked state. Accepts a JSON array (empty array deletes everything) or an object with a local_file field naming a drop-zone batch file.
// @Tags media
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any "Sync results"
// @Failure 400 {object} map[string]string "Validation or path error"
// @Failure 500 {object} map[string]string "Systemic failure"
// @Router /media/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req, err := models.DecodeImportRequest(c.Body())
	if err != nil {
		l.Warn("Rejected import request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	var res *models.SyncResult
	if req.LocalFile != "" {
		res, err = h.service.ImportFromFile(c.Context(), req.LocalFile)
	} else {
		res, err = h.service.Import(c.Context(), *req.Batch)
	}

	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) || errors.Is(err, ErrPathViolation) {
			l.Warn("Rejected import request", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		l.Error("Import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	// Per-item errors still count as a successful run; the results object
	// always ships.
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Import completed.",
		"results": res,
	})
}

// HandleImageSizes lists the registered image size definitions.
// @Summary List image sizes
// @Description Returns the configured image size registry (name to width/height/crop). Public, read-only.
// @Tags media
// @Produce json
// @Success 200 {object} map[string]media.ImageSize "Registered sizes"
// @Router /media/image-sizes [get]
func (h *Handler) HandleImageSizes(c *fiber.Ctx) error {
	return c.JSON(h.service.ImageSizes())
}

// HandleGetMedia returns the tracked record for one external id.
// @Summary Get tracked media
// @Description Returns the fingerprint record and resolved source URL for an external id.
// @Tags media
// @Produce json
// @Param external_id path string true "External id"
// @Success 200 {object} map[string]any "Tracked record"
// @Failure 404 {object} map[string]string "Unknown id"
// @Router /media/{external_id} [get]
func (h *Handler) HandleGetMedia(c *fiber.Ctx) error {
	externalID := c.Params("external_id")
	l := logger.WithRayID(h.service.logger, c)

	rec, err := h.service.GetMedia(c.Context(), externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "unknown external id",
			})
		}
		l.Error("Media lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"record":     rec,
		"source_url": rec.ResolveURL(models.VariantFull),
		"urls":       rec.URLMap(),
	})
}
