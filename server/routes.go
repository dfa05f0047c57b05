package server

import (
	"net/http"

	"github.com/jrsteele09/go-inventory-server/policy"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())

	// LOGIN
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))

	// Protected API routes: bearer session auth first, then the role gate
	s.RegisterRouteHandler("GET "+RouteAPIInventory, s.protected(s.InventoryListHandler(), policy.RouteInventoryRead))
	s.RegisterRouteHandler("POST "+RouteAPIInventory, s.protected(s.InventoryAppendHandler(), policy.RouteInventoryWrite))
	s.RegisterRouteHandler("POST "+RouteAPINotify, s.protected(s.NotifyHandler(), policy.RouteNotifySend))
	s.RegisterRouteHandler("GET "+RouteAPIReport, s.protected(s.ReportHandler(), policy.RouteAIReport))

	// Browser preflights terminate in the CORS middleware and never reach
	// the final handler
	for _, path := range []string{RouteAuthLogin, RouteAPIInventory, RouteAPINotify, RouteAPIReport} {
		s.RegisterRouteHandler("OPTIONS "+path, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))
	}
}

// protected wraps a handler with the API middleware stack plus
// authentication and the role gate for the given route
func (s *Server) protected(handler http.HandlerFunc, route policy.RouteID) http.HandlerFunc {
	mw := append(s.APIMiddleware(), s.RequireAuth(), s.RequireRoute(route))
	return ChainMiddleware(handler, mw...)
}
