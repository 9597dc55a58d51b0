package build

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// NativeRasterizer renders SVGs in-process. It needs no JVM but supports a
// smaller part of SVG than batik (no filters, limited text).
type NativeRasterizer struct{}

// NewNativeRasterizer creates a NativeRasterizer.
func NewNativeRasterizer() *NativeRasterizer {
	return &NativeRasterizer{}
}

// Rasterize draws svg scaled to size x size on a transparent canvas.
func (NativeRasterizer) Rasterize(ctx context.Context, svg []byte, size int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid image size %d", size)
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	dasher := rasterx.NewDasher(size, size, rasterx.NewScannerGV(size, size, rgba, rgba.Bounds()))
	icon.Draw(dasher, 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, rgba, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
