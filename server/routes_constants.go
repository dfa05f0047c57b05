package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthLogin = "/auth/login"

	// Protected API Routes
	RouteAPIInventory = "/api/inventory"
	RouteAPINotify    = "/api/notify"
	RouteAPIReport    = "/api/report"

	// Public Routes
	RouteHealthz = "/healthz"
)
