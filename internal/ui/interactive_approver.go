package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It lists the files and asks the user to type
// "yes" before they are overwritten.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover.
func NewInteractiveApprover(verbose bool) pumlicons.Approver {
	return &InteractiveApprover{verbose: verbose, input: os.Stdin, output: os.Stderr}
}

// RequestApproval prompts the user to type "yes" to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, files []string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  WARNING: %d file(s) will be overwritten in place:\n", len(files))
	for _, f := range files {
		fmt.Fprintf(a.output, "  %s\n", f)
	}
	fmt.Fprint(a.output, "\nTo confirm, type 'yes' and press Enter: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if strings.EqualFold(input, "yes") {
			fmt.Fprintln(a.output, "✓ Confirmed. Writing files...")
			return true, nil
		}
		fmt.Fprintf(a.output, "✗ Input '%s' is not 'yes'. Nothing was written.\n", input)
		return false, nil
	}
}

// Verify InteractiveApprover implements the Approver interface at compile time
var _ pumlicons.Approver = (*InteractiveApprover)(nil)
