// Package logger provides slog construction helpers for the navigation
// engine: a JSON factory, a context-extractor decorator, a fan-out
// handler, a no-op logger, and optional Sentry forwarding.
//
// Context extractors pull navigation-scoped values (route path, tab,
// flow step) out of a context at log time, so a single logger instance
// reports where in the app every message happened:
//
//	log := logger.New(logger.RoutePathExtractor, logger.TabExtractor)
//	ctx := logger.WithRoutePath(ctx, "/profile")
//	log.InfoContext(ctx, "screen shown") // carries route_path=/profile
package logger
