package middlewares

import "context"

const (
	subjectKey ctxKey = iota + 1
	scopeKey
)

func WithSubject(ctx context.Context, subject, scope string) context.Context {
	ctx = context.WithValue(ctx, subjectKey, subject)
	return context.WithValue(ctx, scopeKey, scope)
}

func SubjectFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(subjectKey).(string)
	return v, ok && v != ""
}

func ScopeFrom(ctx context.Context) string {
	v, _ := ctx.Value(scopeKey).(string)
	return v
}
