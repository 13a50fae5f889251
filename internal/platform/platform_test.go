package platform

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSecondLaunchActivatesFirst(t *testing.T) {
	defer goleak.VerifyNone(t)

	first, err := acquireAt("127.0.0.1:0")
	require.NoError(t, err)
	activated := make(chan struct{}, 1)
	first.OnActivate(func() { activated <- struct{}{} })

	second, err := acquireAt(first.Address())
	assert.Nil(t, second)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	select {
	case <-activated:
	case <-time.After(5 * time.Second):
		t.Fatal("first instance was not activated")
	}
	require.NoError(t, first.Release())
}

func TestReleaseFreesAddress(t *testing.T) {
	defer goleak.VerifyNone(t)

	first, err := acquireAt("127.0.0.1:0")
	require.NoError(t, err)
	address := first.Address()
	require.NoError(t, first.Release())

	again, err := acquireAt(address)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestReleaseNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("FocusFlow")
	assert.Equal(t, port, portFromName("FocusFlow"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestConfigDir(t *testing.T) {
	dir, err := ConfigDir("FocusFlow")
	require.NoError(t, err)
	assert.Equal(t, "FocusFlow", filepath.Base(dir))
}
