// Package middleware provides the built-in middlewares for the analysis
// client. Each constructor returns a [client.Middleware] ready to be passed
// to [client.WithMiddleware].
//
//   - [NewTimeoutMiddleware]: adds a per-request deadline via context.WithTimeout.
//   - [NewLoggingMiddleware]: emits structured slog entries before and after
//     every provider call, at three verbosity levels.
//
// There is no retry middleware: a failed model call surfaces to the caller as
// an upstream failure.
//
// Usage:
//
//	c, err := client.New(provider,
//	    client.WithMiddleware(
//	        middleware.NewTimeoutMiddleware(60*time.Second),
//	        middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard),
//	    ),
//	)
//
// Middlewares execute outermost-first, so a request travels
// Timeout → Logging → Provider and the response travels back in reverse.
package middleware
