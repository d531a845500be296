package present

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pixelwell/dmgcore/pkg/ppu"
)

func TestLoopStopsOnStepError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Loop(context.Background(), func() error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	}, fakeSource{}, func(string) {})

	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls)
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Loop(ctx, func() error {
		calls++
		return nil
	}, fakeSource{}, func(string) {})

	require.ErrorIs(t, err, context.Canceled)
	require.Greater(t, calls, 0)
}

func TestLoopCallsOnFrameWithRenderedScreen(t *testing.T) {
	var src fakeSource
	src.tiles[0][0][0] = ppu.Black

	ctx, cancel := context.WithCancel(context.Background())
	frames := make(chan string, 1)
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_ = Loop(ctx, func() error {
		time.Sleep(time.Millisecond)
		return nil
	}, src, func(frame string) {
		select {
		case frames <- frame:
		default:
		}
	})

	select {
	case frame := <-frames:
		require.NotEmpty(t, frame)
	default:
		t.Fatal("onFrame was never called")
	}
}
