package build

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Category PNGs are 72x72 with a 7px margin; the crop keeps the 60x60 tile
// and a 2px frame brings it back to 64x64.
var (
	categoryCrop   = image.Rect(7, 7, 67, 67)
	categoryBorder = 2
	borderColor    = color.NRGBA{R: 0x87, G: 0x91, B: 0x96, A: 0xff}
)

// CropCategoryImage crops a category PNG and frames it with a #879196 border.
func CropCategoryImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode category image: %w", err)
	}

	tile := imaging.Crop(img, categoryCrop)
	w := tile.Bounds().Dx() + 2*categoryBorder
	h := tile.Bounds().Dy() + 2*categoryBorder
	framed := imaging.Paste(imaging.New(w, h, borderColor), tile, image.Pt(categoryBorder, categoryBorder))

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, framed, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
