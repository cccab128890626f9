package server

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/watchjournal/backend/internal/auth/handler"
	entryhandler "github.com/watchjournal/backend/internal/entry/handler"
)

// Handlers bundles everything the route table dispatches to.
type Handlers struct {
	Auth    *authhandler.AuthHandler
	Entries *entryhandler.EntryHandler
	AuthMW  *authhandler.Middleware
}

// route is one row of the static dispatch table: method, path pattern,
// whether the auth middleware gates the handler, and the handler itself.
type route struct {
	method    string
	path      string
	protected bool
	handler   fiber.Handler
}

// The id segment must be decimal digits only. The anchored regex constraint
// rejects signed forms like "+1" or "-1" at dispatch, before any middleware
// runs; Fiber's <int> constraint would accept them (strconv.Atoi takes a
// leading sign), and an unanchored \d+ would substring-match.
const entryIDSegment = ":id<regex(^\\d+$)>"

func routes(h Handlers) []route {
	return []route{
		{fiber.MethodPost, "/auth/register", false, h.Auth.Register},
		{fiber.MethodPost, "/auth/login", false, h.Auth.Login},
		{fiber.MethodGet, "/auth/profile", true, h.Auth.Profile},
		{fiber.MethodPost, "/auth/logout", true, h.Auth.Logout},
		{fiber.MethodGet, "/entries", false, h.Entries.List},
		{fiber.MethodGet, "/entries/" + entryIDSegment, false, h.Entries.Show},
		{fiber.MethodPost, "/entries", true, h.Entries.Create},
		{fiber.MethodPut, "/entries/" + entryIDSegment, true, h.Entries.Update},
		{fiber.MethodDelete, "/entries/" + entryIDSegment, true, h.Entries.Delete},
		{fiber.MethodPost, "/entries/" + entryIDSegment + "/like", true, h.Entries.Like},
		{fiber.MethodDelete, "/entries/" + entryIDSegment + "/like", true, h.Entries.Unlike},
	}
}

// RegisterRoutes installs the route table at the app root and, when apiPrefix
// is non-empty, under the prefix as well, so clients may address either form.
// Protected routes run the auth middleware first; on failure the handler body
// never executes.
func RegisterRoutes(app *fiber.App, apiPrefix string, h Handlers) {
	register := func(router fiber.Router) {
		for _, r := range routes(h) {
			if r.protected {
				router.Add(r.method, r.path, h.AuthMW.RequireUser, r.handler)
			} else {
				router.Add(r.method, r.path, r.handler)
			}
		}
	}

	register(app)
	if apiPrefix != "" && apiPrefix != "/" {
		register(app.Group(apiPrefix))
	}

	// Dispatch miss: any (method, path) not in the table.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not Found",
		})
	})
}
