package chain

import "context"

type commandIDKey struct{}

// WithCommandID attaches the id of the command that triggered a dispatch
func WithCommandID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, commandIDKey{}, id)
}

// CommandIDFrom returns the command id attached to ctx, if any
func CommandIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(commandIDKey{}).(string)
	return id
}
