package llm

import "context"

// UnknownPurpose labels calls made without WithPurpose.
const UnknownPurpose = "unknown"

type (
	purposeKey   struct{}
	requestIDKey struct{}
)

// WithPurpose labels provider calls made with ctx. The label ends up in
// logs and in the usage ledger.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or UnknownPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return UnknownPurpose
}

// WithRequestID tags ctx with the inbound request id so provider logs can
// be joined with access logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
