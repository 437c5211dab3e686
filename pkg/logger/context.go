package logger

import (
	"context"
	"log/slog"
)

type routePathKey struct{}
type tabKey struct{}
type flowStepKey struct{}

// WithRoutePath stores the active route path for log extraction.
func WithRoutePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, routePathKey{}, path)
}

// WithTab stores the selected tab for log extraction.
func WithTab(ctx context.Context, tab string) context.Context {
	return context.WithValue(ctx, tabKey{}, tab)
}

// WithFlowStep stores the current flow step for log extraction.
func WithFlowStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, flowStepKey{}, step)
}

// RoutePathExtractor adds route_path to log records when present.
func RoutePathExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(routePathKey{}).(string); ok && v != "" {
		return slog.String("route_path", v), true
	}
	return slog.Attr{}, false
}

// TabExtractor adds tab to log records when present.
func TabExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(tabKey{}).(string); ok && v != "" {
		return slog.String("tab", v), true
	}
	return slog.Attr{}, false
}

// FlowStepExtractor adds flow_step to log records when present.
func FlowStepExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(flowStepKey{}).(string); ok && v != "" {
		return slog.String("flow_step", v), true
	}
	return slog.Attr{}, false
}
