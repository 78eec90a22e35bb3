// Package sender narrows the engine's transport-specific transfer types
// down to the single operation a caller that only wants to push one file
// needs, so it doesn't have to know about sessions, SCP options, or
// directory recursion.
package sender

import (
	"context"
	"io"
	"os"
	"time"
)

// Sender pushes a single file to destPath over whatever transport
// implements it. When preserve is true the implementation is expected to
// carry modTime through to the destination the way SCP's -p flag does.
type Sender interface {
	Send(ctx context.Context, src io.Reader, destPath string, mode os.FileMode, preserve bool, modTime time.Time) error
}
