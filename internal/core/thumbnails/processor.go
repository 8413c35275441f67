package thumbnails

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// MaxWidth and MaxHeight bound the stored thumbnail. Smaller images are not upscaled.
	MaxWidth  = 1200
	MaxHeight = 630

	// Quality is the JPEG quality of stored thumbnails
	Quality = 85

	// MaxUploadBytes caps the size of an uploaded image
	MaxUploadBytes = 6 << 20

	// maxPixels rejects images whose header claims absurd dimensions before decoding
	maxPixels = 50_000_000
)

// process decodes data, fits it inside MaxWidth x MaxHeight and re-encodes it as JPEG
func process(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, newValidationError(ErrUnsupportedFormat, "empty image")
	}
	if len(data) > MaxUploadBytes {
		return nil, newValidationError(ErrImageTooLarge,
			fmt.Sprintf("image must be at most %d MiB", MaxUploadBytes>>20))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, newValidationError(ErrUnsupportedFormat, "file is not a JPEG, PNG or WebP image")
	}
	if format != "jpeg" && format != "png" && format != "webp" {
		return nil, newValidationError(ErrUnsupportedFormat, fmt.Sprintf("format %s is not supported", format))
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, newValidationError(ErrImageTooLarge, "image dimensions are too large")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, newValidationError(ErrUnsupportedFormat, "image data is corrupt")
	}

	resized := fitWithin(img, MaxWidth, MaxHeight)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("%w: failed to encode JPEG: %v", ErrProcessingFailed, err)
	}
	return buf.Bytes(), nil
}

// fitWithin scales img down, preserving aspect ratio, so it fits in maxWidth x maxHeight
func fitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}
