package present

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pixelwell/dmgcore/pkg/host"
)

// frameInterval is the presenter goroutine's tick rate. Not configurable
// per-call since nothing in spec.md ties frame cadence to an external
// clock; it only needs to be slow enough that onFrame can keep up with a
// terminal repaint.
const frameInterval = 33 * time.Millisecond

// Loop runs step repeatedly on its own goroutine and renders src through
// onFrame on a separate cadence, mirroring spec.md §5's single-writer/
// multi-reader discipline: step is the sole writer of CPU/PPU state (through
// the bus), onFrame only ever reads through a TileSource snapshot. Either
// goroutine returning an error, or ctx being canceled, stops both.
func Loop(ctx context.Context, step func() error, src host.TileSource, onFrame func(string)) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := step(); err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				onFrame(RenderANSI(src))
			}
		}
	})

	return g.Wait()
}
