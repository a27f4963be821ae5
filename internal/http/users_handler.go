package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/crypto"
	"github.com/karloscodes/cartridge/flash"
	"github.com/karloscodes/cartridge/inertia"
	"log/slog"

	"landerlens/internal/users"
)

// RenderLoginAction renders the login page
func RenderLoginAction(ctx *cartridge.Context) error {
	ctx.Logger.Debug("is authenticated", slog.Bool("isAuthenticated", ctx.Session.IsAuthenticated(ctx.Ctx)))

	if ctx.Session.IsAuthenticated(ctx.Ctx) {
		return ctx.Redirect("/admin/dashboard")
	}

	// Render the login page using Inertia (csrfToken and flash auto-injected)
	return inertia.RenderPage(ctx.Ctx, "Login", inertia.Props{})
}

// ProcessLoginAction handles the login form submission
func ProcessLoginAction(ctx *cartridge.Context) error {
	// Parse login form - try both form value and JSON body (for Inertia.js)
	email := ctx.FormValue("email")
	password := ctx.FormValue("password")
	tz := ctx.FormValue("_tz")

	// Try parsing as JSON for Inertia.js requests
	if email == "" && password == "" {
		var jsonBody struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Tz       string `json:"_tz"`
		}
		if err := ctx.BodyParser(&jsonBody); err == nil {
			if jsonBody.Email != "" {
				email = jsonBody.Email
			}
			if jsonBody.Password != "" {
				password = jsonBody.Password
			}
			if jsonBody.Tz != "" {
				tz = jsonBody.Tz
			}
		}
	}

	if email == "" || password == "" {
		flash.SetFlash(ctx.Ctx, "error", "Email and password are required")
		return ctx.Redirect("/login", fiber.StatusFound)
	}

	db := ctx.DB()

	// Find user by email
	user, result := users.FindByEmail(db, email)

	// Always verify password to prevent timing attacks
	// This ensures constant time regardless of whether user exists
	var passwordValid bool
	if result != nil {
		// User not found - verify against dummy hash to maintain constant time
		ctx.Logger.Debug("User not found during login",
			slog.String("email", email))
		dummyHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // bcrypt hash of "dummy"
		crypto.VerifyPassword(dummyHash, password)
		passwordValid = false
	} else {
		passwordValid = crypto.VerifyPassword(user.EncryptedPassword, password)
		if !passwordValid {
			ctx.Logger.Debug("Invalid password attempt",
				slog.String("email", email))
		}
	}

	if !passwordValid {
		// Generic error message - don't reveal whether email exists
		flash.SetFlash(ctx.Ctx, "error", "Invalid email or password")
		return ctx.Redirect("/login", fiber.StatusFound)
	}

	// Set session cookie
	if err := ctx.Session.SetSession(ctx.Ctx, user.ID); err != nil {
		ctx.Logger.Error("Failed to set session", slog.Any("error", err))
		flash.SetFlash(ctx.Ctx, "error", "Login failed")
		return ctx.Redirect("/login", fiber.StatusFound)
	}
	ctx.Logger.Debug("Login successful",
		slog.String("email", email),
		slog.Int("userId", int(user.ID)))

	// Set timezone cookie with robust configuration (10 years expiration)
	tzExpiration := time.Now().Add(10 * 365 * 24 * time.Hour)
	ctx.Cookie(&fiber.Cookie{
		Name:     "_tz",
		Value:    tz,
		Path:     "/",
		MaxAge:   int((10 * 365 * 24 * time.Hour).Seconds()),
		Expires:  tzExpiration,
		Secure:   ctx.Config.IsProduction(),
		HTTPOnly: true,
		SameSite: "Lax",
		Domain:   "",
	})

	return ctx.Redirect("/admin/dashboard", fiber.StatusFound)
}

// LogoutAction handles user logout
func LogoutAction(ctx *cartridge.Context) error {
	userID, isAuthenticated := ctx.Session.GetUserID(ctx.Ctx)
	ctx.Logger.Debug("Logout requested",
		slog.Uint64("userID", uint64(userID)),
		slog.Bool("isAuthenticated", isAuthenticated))

	// Clear the session
	ctx.Session.ClearSession(ctx.Ctx)

	// Also clear the timezone cookie for clean logout
	ctx.ClearCookie("_tz")
	ctx.Cookie(&fiber.Cookie{
		Name:     "_tz",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-24 * time.Hour),
		Secure:   ctx.Config.IsProduction(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	flash.SetFlash(ctx.Ctx, "success", "You have been successfully logged out")

	return ctx.Redirect("/login", fiber.StatusFound)
}
