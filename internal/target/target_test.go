package target

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mailshare/internal/model"
	"github.com/nhle/mailshare/internal/store"
	"github.com/nhle/mailshare/tests/testutil"
)

// fakeDispatcher is a no-op dispatch target for registry tests.
type fakeDispatcher struct {
	id string
}

func (f fakeDispatcher) ID() string   { return f.id }
func (f fakeDispatcher) Name() string { return "fake " + f.id }
func (f fakeDispatcher) Dispatch(
	context.Context, model.EmailDraft, []model.Attachment, string,
) error {
	return nil
}

func TestRegistry_ByID(t *testing.T) {
	r := NewRegistry(fakeDispatcher{id: "a"}, fakeDispatcher{id: "b"})

	d, ok := r.ByID("b")
	require.True(t, ok)
	assert.Equal(t, "b", d.ID())

	_, ok = r.ByID("missing")
	assert.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	r := NewRegistry(fakeDispatcher{id: "mailto"}, fakeDispatcher{id: "eml"})

	// No explicit id, nothing persisted: first registered target wins.
	d, err := r.Resolve(ctx, s, "")
	require.NoError(t, err)
	assert.Equal(t, "mailto", d.ID())

	// Persisted default takes over.
	testutil.MustSetSetting(t, s, store.SettingDefaultTarget, "eml")
	d, err = r.Resolve(ctx, s, "")
	require.NoError(t, err)
	assert.Equal(t, "eml", d.ID())

	// An explicit id beats the persisted default.
	d, err = r.Resolve(ctx, s, "mailto")
	require.NoError(t, err)
	assert.Equal(t, "mailto", d.ID())

	// Unknown explicit id is an error.
	_, err = r.Resolve(ctx, s, "bogus")
	assert.Error(t, err)

	// A stale persisted id falls back to the first target.
	testutil.MustSetSetting(t, s, store.SettingDefaultTarget, "removed")
	d, err = r.Resolve(ctx, s, "")
	require.NoError(t, err)
	assert.Equal(t, "mailto", d.ID())
}
