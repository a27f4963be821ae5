package http

import (
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"

	"landerlens/internal/config"
	"landerlens/internal/settings"
)

// HealthStatus represents the health check response. Source fields report
// whether a feed URL is resolvable (override or environment), since a
// missing URL means every dashboard request degrades to the error banner.
type HealthStatus struct {
	Status      string    `json:"status"`
	App         string    `json:"app"`
	Timestamp   time.Time `json:"timestamp"`
	DBStatus    string    `json:"db_status"`
	FeedSource  string    `json:"feed_source"`
	PostsSource string    `json:"posts_source"`
}

// HealthIndexAction handles the health check endpoint
func HealthIndexAction(ctx *cartridge.Context) error {
	cfg := config.GetConfig()

	dbStatus := "ok"
	feedSource := sourceStatus(cfg.FeedAPIURL)
	postsSource := sourceStatus(cfg.PostsAPIURL)

	db := ctx.DBManager.GetConnection()
	if db == nil {
		dbStatus = "error"
		ctx.Logger.Error("Database connection unavailable")
	} else {
		sqlDB, err := db.DB()
		if err != nil {
			dbStatus = "error"
			ctx.Logger.Error("Database connection error", slog.Any("error", err))
		} else if err := sqlDB.Ping(); err != nil {
			dbStatus = "error"
			ctx.Logger.Error("Database ping failed", slog.Any("error", err))
		}
	}

	// With a live connection the settings override wins over the environment
	if dbStatus == "ok" {
		feedSource = sourceStatus(settings.ResolveFeedAPIURL(db, cfg))
		postsSource = sourceStatus(settings.ResolvePostsAPIURL(db, cfg))
	}

	health := HealthStatus{
		Status:      "ok",
		App:         cfg.AppName,
		Timestamp:   time.Now(),
		DBStatus:    dbStatus,
		FeedSource:  feedSource,
		PostsSource: postsSource,
	}

	if dbStatus != "ok" {
		health.Status = "degraded"
	}

	return ctx.JSON(health)
}

func sourceStatus(url string) string {
	if url == "" {
		return "missing"
	}
	return "configured"
}
