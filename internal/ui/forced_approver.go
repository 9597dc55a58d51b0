package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// ForcedApprover implements the Approver interface for forced (non-interactive)
// approval. It lists the files, counts down and approves, used when the
// --force flag is provided.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) pumlicons.Approver {
	return &ForcedApprover{verbose: verbose, output: os.Stderr, sleepFn: time.Sleep}
}

// RequestApproval announces the overwrite and approves after the countdown.
func (a *ForcedApprover) RequestApproval(ctx context.Context, files []string) (bool, error) {
	fmt.Fprintf(a.output, "\nOverwriting %d file(s):\n", len(files))
	for _, f := range files {
		fmt.Fprintf(a.output, "  %s\n", f)
	}

	countdownSeconds := int(pumlicons.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rWriting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with overwrite...                                  \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ pumlicons.Approver = (*ForcedApprover)(nil)
