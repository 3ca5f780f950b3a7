package service

import "context"

// Actor is the authenticated identity performing an operation.
type Actor struct {
	UserID  int64
	Email   string
	IsStaff bool
}

// CanModify reports whether the actor may change a row owned by ownerID.
func (a Actor) CanModify(ownerID int64) bool {
	return a.IsStaff || a.UserID == ownerID
}

type actorKey struct{}

// WithActor stores the actor in ctx.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
