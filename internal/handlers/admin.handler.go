package handlers

import (
	"recommai/internal/app"
	"recommai/internal/database"
	"recommai/internal/jobs"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	cache database.CacheClient
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		cache: app.Database.Cache.General,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireSession())

	admin.Get("/reference-stats", h.referenceStats)
}

// referenceStats serves the snapshot written by the nightly audit job.
func (h *AdminHandler) referenceStats(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("referenceStats")

	var stats jobs.ReferenceStats
	found, err := database.NewCacheBuilder(h.cache, jobs.REFERENCE_STATS_CACHE_KEY).
		WithContext(c.UserContext()).
		Get(&stats)
	if err != nil {
		log.Er("failed to read reference stats", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "No reference stats collected yet.",
		})
	}

	return c.JSON(stats)
}
