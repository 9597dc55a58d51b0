package retry

import (
	"context"
	"errors"
	"strings"
	"syscall"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// transientToolMarkers are JVM start-up and resource failures that succeed
// when the tool is started again with fewer siblings running.
var transientToolMarkers = []string{
	"java.lang.OutOfMemoryError",
	"could not reserve enough space",
	"error occurred during initialization of vm",
	"cannot allocate memory",
	"resource temporarily unavailable",
	"unable to create native thread",
}

// ToolErrorClassifier implements ErrorClassifier for external tool runs.
type ToolErrorClassifier struct{}

// NewToolErrorClassifier creates a new tool error classifier.
func NewToolErrorClassifier() *ToolErrorClassifier {
	return &ToolErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *ToolErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.ENOMEM) || errors.Is(err, syscall.ETXTBSY) {
		return true
	}

	var toolErr *pumlicons.ToolError
	if !errors.As(err, &toolErr) {
		return false
	}
	stderr := strings.ToLower(toolErr.Stderr)
	for _, marker := range transientToolMarkers {
		if strings.Contains(stderr, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// NeverRetry classifies every error as fatal.
type NeverRetry struct{}

// IsTransient always returns false.
func (NeverRetry) IsTransient(error) bool { return false }
