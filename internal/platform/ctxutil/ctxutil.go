package ctxutil

import "context"

type requestDataKey struct{}

// RequestData rides the request context so log lines and audit rows can be
// tied back to one HTTP request.
type RequestData struct {
	RequestID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}
