package tools

import (
	"context"
	"strings"
)

type contextKeyMinimums struct{}

// WithMinimums annotates the context with config-supplied minimum version
// overrides. Overrides below the built-in minimum are ignored.
func WithMinimums(ctx context.Context, minimums map[string]string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(minimums) == 0 {
		return ctx
	}
	cleaned := make(map[string]string, len(minimums))
	for name, value := range minimums {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		cleaned[strings.ToLower(name)] = trimmed
	}
	if len(cleaned) == 0 {
		return ctx
	}
	return context.WithValue(ctx, contextKeyMinimums{}, cleaned)
}

func minimumOverride(ctx context.Context, tool string) string {
	if ctx == nil {
		return ""
	}
	raw := ctx.Value(contextKeyMinimums{})
	if raw == nil {
		return ""
	}
	overrides, ok := raw.(map[string]string)
	if !ok {
		return ""
	}
	return overrides[strings.ToLower(tool)]
}

func minimumFor(ctx context.Context, def ToolDefinition) string {
	override := strings.TrimSpace(minimumOverride(ctx, def.Name))
	if override == "" {
		return def.MinimumVersion
	}
	if meetsMinimum(override, def.MinimumVersion) {
		return override
	}
	return def.MinimumVersion
}
