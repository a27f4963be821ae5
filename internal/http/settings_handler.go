package http

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/flash"
	"github.com/karloscodes/cartridge/inertia"
	"log/slog"

	"landerlens/internal/config"
	"landerlens/internal/settings"
)

// SettingsPageAction renders the settings page with the current source URLs
func SettingsPageAction(ctx *cartridge.Context) error {
	db := ctx.DB()
	cfg := config.GetConfig()

	allSettings, err := settings.GetAllSettingsForDisplay(db)
	if err != nil {
		ctx.Logger.Error("Failed to load settings", slog.Any("error", err))
		allSettings = []settings.SettingResponse{}
	}

	return inertia.RenderPage(ctx.Ctx, "Settings", inertia.Props{
		"settings":          allSettings,
		"default_feed_url":  cfg.FeedAPIURL,
		"default_posts_url": cfg.PostsAPIURL,
	})
}

// SourceSettingsFormAction handles POST form submission for the source URL
// overrides. An empty value clears the override so the environment
// configuration applies again.
func SourceSettingsFormAction(ctx *cartridge.Context) error {
	feedURL := strings.TrimSpace(ctx.FormValue("feed_api_url"))
	postsURL := strings.TrimSpace(ctx.FormValue("posts_api_url"))

	if msg := validateSourceURL(feedURL); msg != "" {
		flash.SetFlash(ctx.Ctx, "error", "Feed API URL: "+msg)
		return ctx.Redirect("/admin/settings", fiber.StatusFound)
	}
	if msg := validateSourceURL(postsURL); msg != "" {
		flash.SetFlash(ctx.Ctx, "error", "Posts API URL: "+msg)
		return ctx.Redirect("/admin/settings", fiber.StatusFound)
	}

	db := ctx.DB()

	if err := settings.CreateOrUpdateSetting(db, settings.KeyFeedAPIURL, feedURL); err != nil {
		ctx.Logger.Error("Failed to save feed API URL", slog.Any("error", err))
		flash.SetFlash(ctx.Ctx, "error", "Failed to save settings")
		return ctx.Redirect("/admin/settings", fiber.StatusFound)
	}
	if err := settings.CreateOrUpdateSetting(db, settings.KeyPostsAPIURL, postsURL); err != nil {
		ctx.Logger.Error("Failed to save posts API URL", slog.Any("error", err))
		flash.SetFlash(ctx.Ctx, "error", "Failed to save settings")
		return ctx.Redirect("/admin/settings", fiber.StatusFound)
	}

	ctx.Logger.Info("Source settings updated")
	flash.SetFlash(ctx.Ctx, "success", "Settings saved")
	return ctx.Redirect("/admin/settings", fiber.StatusFound)
}

// validateSourceURL checks an override value. Empty is allowed and means
// "no override".
func validateSourceURL(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return "must be a valid URL"
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "must use http or https"
	}
	if parsed.Host == "" {
		return "must include a host"
	}
	return ""
}
