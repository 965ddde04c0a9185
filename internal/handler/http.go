package handler

import (
	"errors"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"cinetech/internal/auth"
	"cinetech/internal/domain"
	"cinetech/internal/service"
)

type Handler struct {
	movies     domain.MovieRepository
	categories domain.CategoryRepository
	importSvc  *service.ImportService
	statsSvc   *service.StatsService
	authSvc    *auth.Service
}

func New(movies domain.MovieRepository, categories domain.CategoryRepository, importSvc *service.ImportService, statsSvc *service.StatsService, authSvc *auth.Service) *Handler {
	return &Handler{
		movies:     movies,
		categories: categories,
		importSvc:  importSvc,
		statsSvc:   statsSvc,
		authSvc:    authSvc,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.handleDashboardPage)
	app.Get("/movies", h.handleMoviesPage)
	app.Get("/categories", h.handleCategoriesPage)
	app.Get("/import", h.handleImportPage)

	app.Get("/api/movies", h.handleListMovies)
	app.Post("/api/movies", h.handleCreateMovie)
	app.Put("/api/movies/:id", h.handleUpdateMovie)
	app.Post("/api/movies/:id", h.handleUpdateMovie)
	app.Delete("/api/movies/:id", h.handleDeleteMovie)
	app.Post("/api/movies/:id/delete", h.handleDeleteMovie)

	app.Get("/api/categories", h.handleListCategories)
	app.Post("/api/categories", h.handleCreateCategory)
	app.Delete("/api/categories/:id", h.handleDeleteCategory)
	app.Post("/api/categories/:id/delete", h.handleDeleteCategory)

	app.Get("/api/stats", h.handleStats)
	app.Get("/api/import/search", h.handleImportSearch)
	app.Post("/api/import/add", h.handleImportAdd)

	app.Post("/api/auth/register", h.handleRegister)
	app.Post("/api/auth/login", h.handleLogin)

	app.Get("/health", h.handleHealth)
}

// --- rendered pages ---

func (h *Handler) handleDashboardPage(c *fiber.Ctx) error {
	stats := h.statsSvc.Snapshot(c.UserContext())
	return c.Render("dashboard", fiber.Map{
		"Stats": stats,
		"Rows":  categoryRows(stats),
	})
}

func (h *Handler) handleMoviesPage(c *fiber.Ctx) error {
	search := c.Query("search")
	sortMode := c.Query("sort", domain.SortByTitle)

	ctx := c.UserContext()
	movies := h.movies.Query(ctx, search, sortMode)
	categories := sortedCategories(h.categories.GetAll(ctx))

	return c.Render("movies", fiber.Map{
		"Movies":     movieViews(movies, categories),
		"Categories": categories,
		"Search":     search,
		"Sort":       sortMode,
	})
}

func (h *Handler) handleCategoriesPage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	categories := sortedCategories(h.categories.GetAll(ctx))
	movies := h.movies.GetAll(ctx)

	counts := make(map[string]int, len(categories))
	for _, m := range movies {
		counts[m.CategoryID]++
	}

	type row struct {
		domain.Category
		Count int
	}
	rows := make([]row, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, row{Category: cat, Count: counts[cat.ID]})
	}

	return c.Render("categories", fiber.Map{"Rows": rows})
}

func (h *Handler) handleImportPage(c *fiber.Ctx) error {
	query := c.Query("q")
	data := fiber.Map{"Query": query}

	if query != "" {
		records, err := h.importSvc.Search(c.UserContext(), query)
		if err != nil {
			log.WithFields(log.Fields{
				"query": query,
				"error": err,
			}).Error("import search failed")
			data["Error"] = "Could not load results, please try again."
		} else {
			data["Results"] = resultViews(records)
		}
	}

	return c.Render("import", data)
}

// --- JSON API ---

func (h *Handler) handleListMovies(c *fiber.Ctx) error {
	movies := h.movies.Query(c.UserContext(), c.Query("search"), c.Query("sort"))
	if movies == nil {
		movies = []domain.Movie{}
	}
	return c.JSON(movies)
}

func (h *Handler) handleCreateMovie(c *fiber.Ctx) error {
	input, err := parseMovieForm(c)
	if err != nil {
		return h.writeError(c, err)
	}

	movie, err := h.movies.Create(c.UserContext(), input)
	if err != nil {
		return h.writeError(c, err)
	}

	if isFormRequest(c) {
		return c.Redirect("/movies", fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

func (h *Handler) handleUpdateMovie(c *fiber.Ctx) error {
	input, err := parseMovieForm(c)
	if err != nil {
		return h.writeError(c, err)
	}

	movie, err := h.movies.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return h.writeError(c, err)
	}

	if isFormRequest(c) {
		return c.Redirect("/movies", fiber.StatusSeeOther)
	}
	return c.JSON(movie)
}

func (h *Handler) handleDeleteMovie(c *fiber.Ctx) error {
	if err := h.movies.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.writeError(c, err)
	}

	if isFormRequest(c) {
		return c.Redirect("/movies", fiber.StatusSeeOther)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) handleListCategories(c *fiber.Ctx) error {
	categories := h.categories.GetAll(c.UserContext())
	if categories == nil {
		categories = []domain.Category{}
	}
	return c.JSON(categories)
}

func (h *Handler) handleCreateCategory(c *fiber.Ctx) error {
	var form struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.BodyParser(&form); err != nil {
		return h.writeError(c, &domain.ValidationError{Field: "body", Reason: "could not be parsed"})
	}

	category, err := h.categories.Add(c.UserContext(), form.Name)
	if err != nil {
		return h.writeError(c, err)
	}

	if isFormRequest(c) {
		return c.Redirect("/categories", fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *Handler) handleDeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.writeError(c, err)
	}

	if isFormRequest(c) {
		return c.Redirect("/categories", fiber.StatusSeeOther)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) handleStats(c *fiber.Ctx) error {
	return c.JSON(h.statsSvc.Snapshot(c.UserContext()))
}

func (h *Handler) handleImportSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return h.writeError(c, &domain.ValidationError{Field: "q", Reason: "must not be empty"})
	}

	records, err := h.importSvc.Search(c.UserContext(), query)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(records)
}

func (h *Handler) handleImportAdd(c *fiber.Ctx) error {
	record, err := parseImportForm(c)
	if err != nil {
		return h.writeError(c, err)
	}

	movie, err := h.importSvc.AddCandidate(c.UserContext(), record)
	if err != nil {
		return h.writeError(c, err)
	}

	if isFormRequest(c) {
		return c.Redirect("/import", fiber.StatusSeeOther)
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

func (h *Handler) handleRegister(c *fiber.Ctx) error {
	username, password, err := parseCredentials(c)
	if err != nil {
		return h.writeError(c, err)
	}

	user, err := h.authSvc.Register(c.UserContext(), username, password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"username": user.Username})
}

func (h *Handler) handleLogin(c *fiber.Ctx) error {
	username, password, err := parseCredentials(c)
	if err != nil {
		return h.writeError(c, err)
	}

	user, err := h.authSvc.Authenticate(c.UserContext(), username, password)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{"username": user.Username})
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// --- helpers ---

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var validationErr *domain.ValidationError

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = fiber.StatusBadRequest
	case errors.Is(err, auth.ErrMissingCredentials):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateTitle),
		errors.Is(err, domain.ErrDuplicateCategory),
		errors.Is(err, auth.ErrUserExists):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrMovieNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNetworkFailure),
		errors.Is(err, domain.ErrMalformedResponse):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError {
		log.WithField("error", err).Error("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func isFormRequest(c *fiber.Ctx) bool {
	contentType := c.Get(fiber.HeaderContentType)
	return strings.Contains(contentType, fiber.MIMEApplicationForm) ||
		strings.Contains(contentType, fiber.MIMEMultipartForm)
}

// sortedCategories sorts a local copy alphabetically for display;
// stored order is untouched.
func sortedCategories(categories []domain.Category) []domain.Category {
	sorted := append([]domain.Category(nil), categories...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})
	return sorted
}

type movieView struct {
	domain.Movie
	CategoryName string
}

func movieViews(movies []domain.Movie, categories []domain.Category) []movieView {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	views := make([]movieView, 0, len(movies))
	for _, m := range movies {
		name, ok := names[m.CategoryID]
		if !ok {
			name = domain.UnknownCategoryName
		}
		views = append(views, movieView{Movie: m, CategoryName: name})
	}
	return views
}

type resultView struct {
	domain.ShowRecord
	Year     int
	GenreRow string
}

func resultViews(records []domain.ShowRecord) []resultView {
	views := make([]resultView, 0, len(records))
	for _, r := range records {
		views = append(views, resultView{
			ShowRecord: r,
			Year:       displayYear(r.Premiered),
			GenreRow:   strings.Join(r.Genres, ", "),
		})
	}
	return views
}

func displayYear(premiered string) int {
	if len(premiered) < 4 {
		return 0
	}
	year := 0
	for _, ch := range premiered[:4] {
		if ch < '0' || ch > '9' {
			return 0
		}
		year = year*10 + int(ch-'0')
	}
	return year
}

type categoryCount struct {
	Name  string
	Count int
}

func categoryRows(stats service.Stats) []categoryCount {
	rows := make([]categoryCount, 0, len(stats.ByCategory))
	for name, count := range stats.ByCategory {
		rows = append(rows, categoryCount{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	return rows
}
