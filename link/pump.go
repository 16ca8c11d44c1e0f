package link

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Device is the receiving end of a simulated UART.
type Device interface {
	Inject(b ...byte) int
	SetSink(w io.Writer)
}

// retryInterval is how long Pump waits before offering bytes again to a
// receiver that refused them under autoflow.
const retryInterval = time.Millisecond

// Pump connects rw to dev: bytes the device transmits are written to rw,
// bytes read from rw are injected into the device's receiver. It returns
// nil at EOF, the read error otherwise, or ctx.Err() once ctx is done.
// Cancellation is noticed between reads; a read blocked on rw is not
// interrupted, so callers close rw to stop a pump early. The device keeps
// writing to rw after Pump returns, so output still flows once the input
// side has reached EOF.
func Pump(ctx context.Context, rw io.ReadWriter, dev Device) error {
	dev.SetSink(rw)

	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := rw.Read(buf)
		pending := buf[:n]
		for len(pending) > 0 {
			pending = pending[dev.Inject(pending...):]
			if len(pending) == 0 {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryInterval):
			}
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return fmt.Errorf("link: read: %w", rerr)
		}
	}
}
