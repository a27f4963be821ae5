package internal

import (
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge/testsupport"
	"github.com/stretchr/testify/require"
)

func TestLoginRouteRateLimited(t *testing.T) {
	srv := testsupport.NewTestServer(t, testsupport.TestServerOptions{
		RouteMountFunc: MountAppRoutes,
	})
	routes := srv.App.GetRoutes(true)

	var loginRoute *fiber.Route
	for idx := range routes {
		route := routes[idx]
		if route.Method == fiber.MethodPost && route.Path == "/login" {
			loginRoute = &routes[idx]
			break
		}
	}

	require.NotNil(t, loginRoute, "expected login route to be registered")

	// The rate limiter is wrapped in a conditional function that only applies
	// in production. In test environment, it passes through but the wrapper
	// still exists. Check for the conditional wrapper (defined in MountAppRoutes).
	hasRateLimiter := false
	var handlerNames []string
	for _, handler := range loginRoute.Handlers {
		name := runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
		handlerNames = append(handlerNames, name)
		// Check for either the raw limiter or our conditional wrapper
		if strings.Contains(name, "middleware/limiter") || strings.Contains(name, "MountAppRoutes") {
			hasRateLimiter = true
			break
		}
	}

	require.Truef(t, hasRateLimiter, "expected rate limiter middleware for login route, handlers: %v", handlerNames)
}

func TestDashboardRoutesRegistered(t *testing.T) {
	srv := testsupport.NewTestServer(t, testsupport.TestServerOptions{
		RouteMountFunc: MountAppRoutes,
	})
	routes := srv.App.GetRoutes(true)

	var hasDashboard, hasPosts, hasDashboardData, hasSettings, hasSourcesForm bool

	for _, route := range routes {
		if route.Method == fiber.MethodGet && route.Path == "/admin/dashboard" {
			hasDashboard = true
		}
		if route.Method == fiber.MethodGet && route.Path == "/admin/posts" {
			hasPosts = true
		}
		if route.Method == fiber.MethodGet && route.Path == "/admin/api/dashboard" {
			hasDashboardData = true
		}
		if route.Method == fiber.MethodGet && route.Path == "/admin/settings" {
			hasSettings = true
		}
		if route.Method == fiber.MethodPost && route.Path == "/admin/settings/sources" {
			hasSourcesForm = true
		}
	}

	require.True(t, hasDashboard, "expected dashboard route to be registered")
	require.True(t, hasPosts, "expected posts route to be registered")
	require.True(t, hasDashboardData, "expected dashboard data route to be registered")
	require.True(t, hasSettings, "expected settings route to be registered")
	require.True(t, hasSourcesForm, "expected settings sources form route to be registered")
}

func TestHealthRouteRegistered(t *testing.T) {
	srv := testsupport.NewTestServer(t, testsupport.TestServerOptions{
		RouteMountFunc: MountAppRoutes,
	})
	routes := srv.App.GetRoutes(true)

	var hasGet, hasHead bool
	for _, route := range routes {
		if route.Path == "/_health" && route.Method == fiber.MethodGet {
			hasGet = true
		}
		if route.Path == "/_health" && route.Method == fiber.MethodHead {
			hasHead = true
		}
	}

	require.True(t, hasGet, "expected health GET route to be registered")
	require.True(t, hasHead, "expected health HEAD route to be registered")
}
