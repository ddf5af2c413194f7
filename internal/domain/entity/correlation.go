package entity

import "context"

type correlationKey struct{}

// WithCorrelationID tags ctx so outgoing ForSign calls reuse id as their
// X-Correlation-Id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
