// Package app provides the public API for Landerlens.
// This package exports types and functions for downstream builds to extend.
package app

import (
	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"landerlens/internal"
	"landerlens/internal/config"
	"landerlens/internal/database"
	"landerlens/internal/settings"
)

// Re-export core types
type (
	Application = internal.Application
	Config      = config.Config
	DBManager   = database.DBManager
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	return config.GetConfig()
}

// NewApp creates a new application with default routes
func NewApp() (*Application, error) {
	return internal.NewApp()
}

// NewAppWithRoutes creates a new application with custom route mounting
func NewAppWithRoutes(cfg *Config, routeMount func(*cartridge.Server)) (*Application, error) {
	return internal.NewAppWithRoutes(cfg, routeMount)
}

// SetupSession configures session management on the server
func SetupSession(srv *cartridge.Server) {
	internal.SetupSession(srv)
}

// MountAppRoutes mounts the default routes (for extensions to call after their own)
func MountAppRoutes(srv *cartridge.Server) {
	internal.MountAppRoutesWithoutSession(srv)
}

// Settings functions
var (
	SetupDefaultSettings = settings.SetupDefaultSettings
)

// ResolveFeedAPIURL returns the active feed API URL for the given connection
func ResolveFeedAPIURL(db *gorm.DB, cfg *Config) string {
	return settings.ResolveFeedAPIURL(db, cfg)
}

// ResolvePostsAPIURL returns the active posts API URL for the given connection
func ResolvePostsAPIURL(db *gorm.DB, cfg *Config) string {
	return settings.ResolvePostsAPIURL(db, cfg)
}
