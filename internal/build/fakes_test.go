package build

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vvka-141/pumlicons/pkg/pumlicons"
)

// fakeRasterizer returns the prepared SVG prefixed with the size, so tests
// can see what reached the rasterizer.
type fakeRasterizer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, svg []byte, size int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, string(svg))
	if f.err != nil {
		return nil, f.err
	}
	return []byte(fmt.Sprintf("png%d:%s", size, svg)), nil
}

// fakeEncoder fails the first failures calls with err.
type fakeEncoder struct {
	mu       sync.Mutex
	calls    int
	failures int
	err      error
	inputs   map[string]string
}

func (f *fakeEncoder) Encode(ctx context.Context, name string, png []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	if f.inputs == nil {
		f.inputs = make(map[string]string)
	}
	f.inputs[name] = string(png)
	return fmt.Sprintf("sprite $%s [64x64/16z] {\nxyz\n}\n", name), nil
}

var (
	jvmOutOfMemory = &pumlicons.ToolError{Tool: "plantuml", Stderr: "java.lang.OutOfMemoryError: Java heap space", Err: errors.New("exit status 1")}
	badInput       = &pumlicons.ToolError{Tool: "plantuml", Stderr: "Cannot decode image", Err: errors.New("exit status 1")}
)
