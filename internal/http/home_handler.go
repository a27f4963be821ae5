package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
)

// HomeIndexAction handles the root path
func HomeIndexAction(ctx *cartridge.Context) error {
	if ctx.Session != nil && ctx.Session.IsAuthenticated(ctx.Ctx) {
		return ctx.Redirect("/admin/dashboard", fiber.StatusFound)
	}
	return ctx.Redirect("/login", fiber.StatusFound)
}

// AdminIndexAction redirects the bare admin path to the dashboard
func AdminIndexAction(ctx *cartridge.Context) error {
	return ctx.Redirect("/admin/dashboard", fiber.StatusFound)
}
