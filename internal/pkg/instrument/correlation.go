package instrument

import "context"

type correlationKey struct{}

// SetCorrelationID attaches the id propagated through HTTP headers and
// message headers. Log records written with the returned context carry it as
// "_cID".
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// GetCorrelationID returns "" when none was set.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
