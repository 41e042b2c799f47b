package handlers

import (
	"errors"

	"recommai/internal/app"
	searchController "recommai/internal/controllers/search"
	"recommai/internal/handlers/middleware"
	"recommai/internal/models"
	"recommai/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Handler
	searchController searchController.SearchControllerInterface
	sessions         *services.SessionService
}

func NewSearchHandler(app app.App, router fiber.Router) *SearchHandler {
	log := logger.New("handlers").File("search_handler")
	return &SearchHandler{
		searchController: app.Controllers.Search,
		sessions:         app.Services.Session,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

type fullResultsRequest struct {
	Query  string        `json:"query"`
	Domain models.Domain `json:"domain"`
}

func (h *SearchHandler) Register() {
	search := h.router.Group("/search", h.middleware.RequireSession())

	search.Get("/similar", h.similarTitles)
	search.Post("/results", h.fullResults)
	search.Post("/new", h.newSearch)
	search.Get("/history", h.history)
}

// similarTitles is the light search flow: candidate titles and scores only,
// no enrichment and no session transition.
func (h *SearchHandler) similarTitles(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("similarTitles")

	query := c.Query("q")

	titles, domain, err := h.searchController.FindSimilarTitles(c.UserContext(), query)
	if err != nil {
		log.Er("similar titles search failed", err, "query", query)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	return c.JSON(fiber.Map{
		"results": titles,
		"domain":  domain,
	})
}

// fullResults drives the Searching -> ShowingResults transition: the query
// and domain are persisted on the session before the lookup runs, then the
// enriched bundle is returned.
func (h *SearchHandler) fullResults(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("fullResults")

	session := middleware.GetSession(c)
	user := middleware.GetUser(c)
	if session == nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req fullResultsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Info("malformed search request", "error", err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "A search query and domain are required.",
		})
	}

	if err := session.Apply(models.EventSearch, req.Query, req.Domain); err != nil {
		log.Info(
			"search transition rejected",
			"state", session.State,
			"query", req.Query,
			"domain", req.Domain,
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "A search query and domain are required.",
		})
	}

	if err := h.sessions.Save(c.UserContext(), session); err != nil {
		log.Er("failed to persist session input", err, "sessionID", session.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	bundle, err := h.searchController.FindFullResults(c.UserContext(), req.Query, req.Domain)
	if err != nil {
		if errors.Is(err, searchController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "No recommendations found for that title.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	h.searchController.RecordSearch(c.UserContext(), user.ID, req.Query, req.Domain, bundle)

	return c.JSON(fiber.Map{
		"success": true,
		"state":   session.State,
		"results": bundle,
	})
}

// newSearch returns the session to the searching state.
func (h *SearchHandler) newSearch(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("newSearch")

	session := middleware.GetSession(c)
	if session == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	if err := session.Apply(models.EventNewSearch, "", ""); err != nil {
		log.Info("new search transition rejected", "state", session.State)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "No results to clear.",
		})
	}

	if err := h.sessions.Save(c.UserContext(), session); err != nil {
		log.Er("failed to persist session", err, "sessionID", session.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"state":   session.State,
	})
}

func (h *SearchHandler) history(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("history")

	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	entries, err := h.searchController.RecentSearches(c.UserContext(), user.ID)
	if err != nil {
		log.Er("failed to load history", err, "userID", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Database connection failed.",
		})
	}

	return c.JSON(fiber.Map{
		"history": entries,
	})
}
