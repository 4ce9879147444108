package checker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiter_AcquireRelease(t *testing.T) {
	t.Parallel()

	l := NewLimiter(2)
	require.NoError(t, l.Acquire(context.Background()))
	require.NoError(t, l.Acquire(context.Background()))

	// Third acquire must block until a permit is returned.
	acquired := make(chan error, 1)
	go func() {
		acquired <- l.Acquire(context.Background())
	}()

	select {
	case <-acquired:
		t.Fatal("acquire succeeded past the permit bound")
	case <-time.After(50 * time.Millisecond):
	}

	l.Release()
	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("acquire did not observe the released permit")
	}
}

func TestLimiter_AcquireFailsOnDeadContext(t *testing.T) {
	t.Parallel()

	l := NewLimiter(1)
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, l.Acquire(ctx))
}

func TestNewLimiter_CoercesBadBound(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0)
	require.NoError(t, l.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.Error(t, l.Acquire(ctx), "a zero bound should degrade to one permit, not unlimited")
}
