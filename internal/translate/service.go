// Package translate wraps translation backends with a failure-tolerant
// adapter: a failed translation degrades to the source text and never
// aborts the caller.
package translate

import "context"

// Service translates text into target, auto-detecting the source language.
// Implementations may fail; Adapter absorbs the failure.
type Service interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// BatchService translates several texts in one round trip. Results must be
// in input order.
type BatchService interface {
	Service
	TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error)
}
