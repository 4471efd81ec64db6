package server

// Route path constants
// All host routes are defined here to ensure consistency and prevent typos
const (
	// Browser routes: SSO callback landing, login and logout
	RouteIndex  = "/"
	RouteLogin  = "/login"
	RouteLogout = "/logout"

	// API Routes
	RouteAPISession   = "/api/session"
	RouteAPIProfile   = "/api/profile"
	RouteAPICompanies = "/api/companies"
	RouteAPIRefresh   = "/api/refresh"

	RouteHealth = "/healthz"
)
