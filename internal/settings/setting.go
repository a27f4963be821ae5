package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge/cache"
	"github.com/karloscodes/cartridge/sqlite"
	"gorm.io/gorm"

	"landerlens/internal/config"
)

// Setting represents a configuration item in the database
type Setting struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"uniqueIndex;not null"`
	Value     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:milli"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:milli"`
}

// Source URL settings keys. An empty value means "fall back to the
// environment configuration".
const (
	KeyFeedAPIURL  = "feed_api_url"
	KeyPostsAPIURL = "posts_api_url"
)

var sourceURLCache *cache.Cache[string, string]

// SetupDefaultSettings initializes default settings in the database
func SetupDefaultSettings(dbConn *gorm.DB) error {
	settings := []Setting{
		{Key: KeyFeedAPIURL, Value: ""},
		{Key: KeyPostsAPIURL, Value: ""},
	}
	err := sqlite.PerformWrite(slog.Default(), dbConn, func(tx *gorm.DB) error {
		for _, setting := range settings {
			// Use raw SQL for upsert
			err := tx.Exec(`
                INSERT INTO settings (key, value, created_at, updated_at)
                VALUES (?, ?, ?, ?)
                ON CONFLICT(key) DO NOTHING
            `, setting.Key, setting.Value, time.Now().UTC(), time.Now().UTC()).Error
			if err != nil {
				slog.Default().Error("Failed to upsert setting", slog.String("key", setting.Key), slog.Any("error", err))
				return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
			}
		}
		return nil
	})

	// Initialize the cache
	loadCache(dbConn, slog.Default())

	return err
}

// GetSetting retrieves a setting value from the database
func GetSetting(dbConn *gorm.DB, key string) (string, error) {
	var setting Setting
	result := dbConn.Where("key = ?", key).First(&setting)

	if result.Error != nil {
		return "", result.Error
	}

	return setting.Value, nil
}

// UpdateSetting updates a setting in the database using a transaction
func UpdateSetting(dbConn *gorm.DB, key string, value string) error {
	// Start a transaction
	tx := dbConn.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Ensure we either commit or rollback
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Update the setting within the transaction
	result := tx.Model(&Setting{}).Where("key = ?", key).Update("value", value)
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update setting: %w", result.Error)
	}

	// If no rows were affected, the setting might not exist - try to create it
	if result.RowsAffected == 0 {
		setting := Setting{
			Key:   key,
			Value: value,
		}
		if err := tx.Create(&setting).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create setting: %w", err)
		}
	}

	// Commit the transaction
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	// Clear and reload the cache after successful update
	if sourceURLCache != nil {
		sourceURLCache.Clear()
	}
	loadCache(dbConn, slog.Default())

	return nil
}

// CreateOrUpdateSetting creates a new setting or updates an existing one
func CreateOrUpdateSetting(dbConn *gorm.DB, key string, value string) error {
	// Check if the setting exists
	var count int64
	if err := dbConn.Model(&Setting{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check if setting exists: %w", err)
	}

	// If it exists, update it; otherwise, create it
	if count > 0 {
		return UpdateSetting(dbConn, key, value)
	} else {
		setting := Setting{
			Key:   key,
			Value: value,
		}
		if err := dbConn.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create setting: %w", err)
		}
		return nil
	}
}

// ResolveFeedAPIURL returns the feed API URL, preferring a non-empty
// database override over the environment configuration.
func ResolveFeedAPIURL(dbConn *gorm.DB, cfg *config.Config) string {
	return resolveSourceURL(dbConn, KeyFeedAPIURL, cfg.FeedAPIURL)
}

// ResolvePostsAPIURL returns the posts API URL, preferring a non-empty
// database override over the environment configuration.
func ResolvePostsAPIURL(dbConn *gorm.DB, cfg *config.Config) string {
	return resolveSourceURL(dbConn, KeyPostsAPIURL, cfg.PostsAPIURL)
}

func resolveSourceURL(dbConn *gorm.DB, key, fallback string) string {
	if sourceURLCache == nil {
		loadCache(dbConn, slog.Default())
	}
	value, err := sourceURLCache.Get(key)
	if err != nil {
		slog.Default().Warn("Failed to resolve source URL setting", slog.String("key", key), slog.Any("error", err))
		return fallback
	}
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func loadCache(dbConn *gorm.DB, logger *slog.Logger) {
	fetchFunc := func(key string) (string, error) {
		var value string
		err := dbConn.WithContext(context.Background()).Raw("SELECT value FROM settings WHERE key = ? LIMIT 1", key).Scan(&value).Error
		if err != nil {
			return "", err
		}
		return value, nil
	}
	sourceURLCache = cache.NewCache[string, string](logger, 5*time.Minute, fetchFunc)
}

// ResetCache drops the settings cache. Tests sharing a process use this to
// avoid reads against a previous test's database connection.
func ResetCache() {
	sourceURLCache = nil
}

// SettingResponse represents a setting key-value pair for API responses
type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GetAllSettingsForDisplay retrieves all settings for the settings page
func GetAllSettingsForDisplay(db *gorm.DB) ([]SettingResponse, error) {
	var allSettings []Setting
	if err := db.Find(&allSettings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}

	result := make([]SettingResponse, 0, len(allSettings))
	for _, setting := range allSettings {
		result = append(result, SettingResponse{
			Key:   setting.Key,
			Value: setting.Value,
		})
	}
	return result, nil
}
