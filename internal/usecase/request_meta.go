package usecase

import "context"

// RequestMeta is the transport metadata copied into audit entries.
type RequestMeta struct {
	IPAddress     string
	UserAgent     string
	CorrelationID string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func RequestMetaFrom(ctx context.Context) RequestMeta {
	m, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m
}
