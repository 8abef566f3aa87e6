package llm

import "context"

type contextKey int

const (
	purposeKey contextKey = iota
	targetKey
)

// WithPurpose labels the requests made with ctx, e.g. PurposeTranslate.
// The label is stored with each request event and filters `itihas llm list`.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label of ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithTarget records the language code a translation request targets.
func WithTarget(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, targetKey, lang)
}

// TargetFrom returns the target language code of ctx, if any.
func TargetFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(targetKey).(string)
	return v, ok && v != ""
}
