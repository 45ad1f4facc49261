package kit

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/mrmateussiilva/petstory/internal/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	stickerCellPx    = 600
	stickerPaddingPx = 36
	stickerCaptionPx = 64
	stickerColumns   = 3
)

var (
	captionFont     *truetype.Font
	captionFontErr  error
	captionFontOnce sync.Once
	cutLineColor    = color.RGBA{R: 170, G: 170, B: 170, A: 255}
)

func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = freetype.ParseFont(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// ComposeStickerSheet draws the 3x3 sticker grid as a single image. Each cell
// holds one artwork, a dashed cut line and the caption below it.
func ComposeStickerSheet(cells []image.Image, caption string) (image.Image, error) {
	if len(cells) != StickerCells {
		return nil, fmt.Errorf("sticker sheet needs %d cells, got %d", StickerCells, len(cells))
	}

	rows := StickerCells / stickerColumns
	sheet := image.NewRGBA(image.Rect(0, 0, stickerColumns*stickerCellPx, rows*stickerCellPx))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	parsed, err := loadCaptionFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption font: %w", err)
	}
	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    34,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  sheet,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	for i, img := range cells {
		cellX := (i % stickerColumns) * stickerCellPx
		cellY := (i / stickerColumns) * stickerCellPx

		maxW := stickerCellPx - 2*stickerPaddingPx
		maxH := stickerCellPx - 2*stickerPaddingPx - stickerCaptionPx
		resized := imaging.FitBox(img, maxW, maxH)
		b := resized.Bounds()
		offsetX := cellX + (stickerCellPx-b.Dx())/2
		offsetY := cellY + stickerPaddingPx + (maxH-b.Dy())/2
		draw.Draw(sheet, image.Rect(offsetX, offsetY, offsetX+b.Dx(), offsetY+b.Dy()), resized, b.Min, draw.Over)

		dashedRect(sheet, image.Rect(cellX+8, cellY+8, cellX+stickerCellPx-8, cellY+stickerCellPx-8))

		if caption != "" {
			width := drawer.MeasureString(caption).Ceil()
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(cellX + (stickerCellPx-width)/2),
				Y: fixed.I(cellY + stickerCellPx - stickerPaddingPx - 12),
			}
			drawer.DrawString(caption)
		}
	}

	return sheet, nil
}

func dashedRect(img *image.RGBA, r image.Rectangle) {
	const dash = 12
	for x := r.Min.X; x < r.Max.X; x++ {
		if (x/dash)%2 == 0 {
			img.Set(x, r.Min.Y, cutLineColor)
			img.Set(x, r.Max.Y-1, cutLineColor)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if (y/dash)%2 == 0 {
			img.Set(r.Min.X, y, cutLineColor)
			img.Set(r.Max.X-1, y, cutLineColor)
		}
	}
}
