package mediastore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionStartsUndetermined(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Permissions(nil).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Undetermined, got)
}

func TestRequestGrantsWithoutPrompt(t *testing.T) {
	s := openTestStore(t)
	p := s.Permissions(nil)
	got, err := p.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Granted, got)

	got, err = p.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Granted, got)
}

func TestRequestRecordsDenial(t *testing.T) {
	s := openTestStore(t)
	asked := 0
	p := s.Permissions(func(context.Context) (bool, error) {
		asked++
		return false, nil
	})
	got, err := p.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Denied, got)

	got, err = p.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Denied, got)
	assert.Equal(t, 1, asked, "a recorded decision is not asked again")
}

func TestRevokeAllowsNewPrompt(t *testing.T) {
	s := openTestStore(t)
	answer := false
	p := s.Permissions(func(context.Context) (bool, error) { return answer, nil })
	_, err := p.Request(context.Background())
	require.NoError(t, err)

	require.NoError(t, p.Revoke(context.Background()))
	answer = true
	got, err := p.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Granted, got)
}

func TestRequestPromptError(t *testing.T) {
	s := openTestStore(t)
	p := s.Permissions(func(context.Context) (bool, error) { return false, errors.New("no terminal") })
	got, err := p.Request(context.Background())
	require.Error(t, err)
	assert.Equal(t, Denied, got)

	got, err = p.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Denied, got)

	require.NoError(t, p.Revoke(context.Background()))
	got, err = p.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Undetermined, got)
}

func TestRequestCancelledContextRecordsNothing(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	p := s.Permissions(func(ctx context.Context) (bool, error) {
		cancel()
		return false, ctx.Err()
	})
	_, err := p.Request(ctx)
	require.ErrorIs(t, err, context.Canceled)

	got, err := p.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Undetermined, got)
}

func TestParsePermissionRoundTrip(t *testing.T) {
	for _, p := range []Permission{Undetermined, Granted, Denied} {
		got, err := ParsePermission(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePermission("maybe")
	assert.Error(t, err)
}
