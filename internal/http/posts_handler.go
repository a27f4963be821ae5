package http

import (
	"context"

	"log/slog"

	"github.com/karloscodes/cartridge"
	"github.com/karloscodes/cartridge/inertia"
	"github.com/karloscodes/cartridge/structs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"landerlens/internal/config"
	"landerlens/internal/feed"
	"landerlens/internal/metrics"
	"landerlens/internal/settings"
)

const postsPageTitle = "Posts Overview"

// PostsIndexAction renders the per-user posts overview. Same degradation
// contract as the dashboard: failures zero the metrics and set a banner.
func PostsIndexAction(ctx *cartridge.Context) error {
	cfg := config.GetConfig()
	db := ctx.DB()

	client := feed.NewClient(cfg.FeedTimeout(), ctx.Logger)
	sourceURL := settings.ResolvePostsAPIURL(db, cfg)

	summary, errorMessage := loadPostsSummary(ctx.Ctx.UserContext(), client, sourceURL, ctx.Logger)

	props := structs.Map(summary)
	props["page_title"] = postsPageTitle
	props["error_message"] = errorMessage

	return inertia.RenderPage(ctx.Ctx, "Posts", props)
}

func loadPostsSummary(ctx context.Context, client *feed.Client, sourceURL string, logger *slog.Logger) (metrics.Summary, string) {
	items, err := client.FetchList(ctx, sourceURL)
	if err != nil {
		logger.Error("Failed to load posts feed", slog.Any("error", err))
		return metrics.EmptySummary(), messageForFetchError(err)
	}

	summary := metrics.Summarize(metrics.NormalizeList(items), metrics.BucketByUser)

	// The upstream posts source delivers lowercase lorem titles; title-case
	// them for display. Aggregates stay computed over the raw titles.
	caser := cases.Title(language.AmericanEnglish)
	for i := range summary.Items {
		summary.Items[i].Title = caser.String(summary.Items[i].Title)
	}

	return summary, ""
}
