package logx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_FallsBackToBase(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(nil)) //nolint:staticcheck // nil ctx is the documented fallback path
}

func TestWith_ScopesLogger(t *testing.T) {
	ctx := context.Background()
	base := FromContext(ctx)

	scoped := With(ctx, "command", "share")

	// The scoped context carries its own logger; the original is untouched.
	assert.NotSame(t, base, FromContext(scoped))
	assert.Same(t, base, FromContext(ctx))

	// Nesting scopes again yields a further-derived logger.
	nested := With(scoped, "slot", 1)
	assert.NotSame(t, FromContext(scoped), FromContext(nested))
}
