// Package retry re-runs external tool invocations that failed for transient
// reasons, with exponential backoff.
//
// The rasterizer and sprite encoder are JVM processes started once per icon
// from a worker pool; under memory pressure a JVM can fail to start. The
// ToolErrorClassifier recognizes those failures, everything else is fatal.
//
// # Example Usage
//
//	png, err := retry.Value(ctx, retry.Default(), func(ctx context.Context) ([]byte, error) {
//	    return rasterizer.Rasterize(ctx, svg, 64)
//	})
package retry
