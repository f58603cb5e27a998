package mix

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// thumbnail scales img down, keeping its aspect ratio, so that neither
// side exceeds maxSize. Smaller images and maxSize 0 are returned as is.
func thumbnail(logger *slog.Logger, img image.Image, maxSize int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	if maxSize == 0 || (srcWidth <= float64(maxSize) && srcHeight <= float64(maxSize)) {
		return img
	}

	scale := float64(maxSize) / max(srcWidth, srcHeight)
	destWidth := max(1, int(math.Round(srcWidth*scale)))
	destHeight := max(1, int(math.Round(srcHeight*scale)))

	logger.Info("resizing", "width", destWidth, "height", destHeight)
	dest := image.NewNRGBA(image.Rect(0, 0, destWidth, destHeight))
	draw.CatmullRom.Scale(dest, dest.Bounds(), img, srcBounds, draw.Src, nil)

	return dest
}
