// Package dispatchhandlers provides HTTP middleware for the dispatch front
// controller.
//
// # Request ID Middleware
//
// RequestIDMiddleware generates or propagates a request ID header and
// stores the ID in the request context:
//
//	d.Use(dispatchhandlers.RequestIDMiddleware(dispatchhandlers.RequestIDConfig{}))
//
// # Recovery Middleware
//
// RecoveryMiddleware turns panics in actions into 500 responses and logs
// them to an optional slog.Logger.
//
// # Access Log Middleware
//
// AccessLogMiddleware logs one line per request with the status, the
// duration and the controller and method the request was dispatched to:
//
//	d.Use(dispatchhandlers.AccessLogMiddleware(dispatchhandlers.AccessLogConfig{
//	    Logger: slog.Default(),
//	}))
package dispatchhandlers
