package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteHealth, s.HealthHandler())

	// Browser flow
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.BrowserMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.BrowserMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.BrowserMiddleware()...))

	// Session API (requires stored tokens)
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("GET "+RouteAPIProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("GET "+RouteAPICompanies, ChainMiddleware(s.CompaniesHandler(), s.APIMiddleware(s.RequireToken())...))
	s.RegisterRouteHandler("POST "+RouteAPIRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware(s.RequireToken())...))
}
