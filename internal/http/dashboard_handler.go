package http

import (
	"context"
	"errors"

	"log/slog"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/inertia"
	"github.com/karloscodes/cartridge/structs"

	"landerlens/internal/config"
	"landerlens/internal/feed"
	"landerlens/internal/metrics"
	"landerlens/internal/settings"
)

const dashboardPageTitle = "Landing Dashboard"

// DashboardIndexAction renders the landing activity dashboard. The feed is
// fetched on every request; any failure degrades to zeroed metrics plus an
// error banner, never an error page.
func DashboardIndexAction(ctx *cartridge.Context) error {
	cfg := config.GetConfig()
	db := ctx.DB()

	client := feed.NewClient(cfg.FeedTimeout(), ctx.Logger)
	sourceURL := settings.ResolveFeedAPIURL(db, cfg)

	summary, errorMessage := loadDashboardSummary(ctx.Ctx.UserContext(), client, sourceURL, ctx.Logger)

	props := structs.Map(summary)
	props["page_title"] = dashboardPageTitle
	props["error_message"] = errorMessage

	return inertia.RenderPage(ctx.Ctx, "Dashboard", props)
}

// DashboardDataAction serves the dashboard aggregates as JSON for chart refresh.
func DashboardDataAction(ctx *cartridge.Context) error {
	cfg := config.GetConfig()
	db := ctx.DB()

	client := feed.NewClient(cfg.FeedTimeout(), ctx.Logger)
	sourceURL := settings.ResolveFeedAPIURL(db, cfg)

	summary, errorMessage := loadDashboardSummary(ctx.Ctx.UserContext(), client, sourceURL, ctx.Logger)

	response := structs.Map(summary)
	response["error_message"] = errorMessage

	return ctx.JSON(response)
}

func loadDashboardSummary(ctx context.Context, client *feed.Client, sourceURL string, logger *slog.Logger) (metrics.Summary, string) {
	data, err := client.FetchKeyed(ctx, sourceURL)
	if err != nil {
		logger.Error("Failed to load landing feed", slog.Any("error", err))
		return metrics.EmptySummary(), messageForFetchError(err)
	}

	return metrics.Summarize(metrics.NormalizeKeyed(data), metrics.BucketByDate), ""
}

// messageForFetchError maps a classified fetch failure to the banner shown
// above the zeroed dashboard.
func messageForFetchError(err error) string {
	var fetchErr *feed.Error
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case feed.KindNotConfigured:
			return "No feed API URL is configured. Set one under Settings."
		case feed.KindPayload:
			return "The feed API returned a response that could not be read."
		}
	}
	return "Could not reach the feed API. Please try again later."
}
