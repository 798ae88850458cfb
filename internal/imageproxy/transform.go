package imageproxy

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // imaging registers gif/jpeg/png/bmp/tiff itself
)

// OutputMIME is the content type of every transformed image, whatever the
// source format was.
const OutputMIME = "image/png"

// HalfSize returns floor(w/2) x floor(h/2), with each dimension clamped to
// at least one pixel so 1-pixel-wide or -tall sources still encode.
func HalfSize(w, h int) (int, int) {
	return max(w/2, 1), max(h/2, 1)
}

// Downscale decodes an image in any registered format, halves both
// dimensions with a Lanczos filter, and re-encodes it as PNG at best
// compression. It returns the encoded bytes and the output dimensions.
func Downscale(data []byte) ([]byte, image.Point, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("imageproxy: decoding image: %w", err)
	}

	b := src.Bounds()
	w, h := HalfSize(b.Dx(), b.Dy())
	dst := imaging.Resize(src, w, h, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, dst, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, image.Point{}, fmt.Errorf("imageproxy: encoding png: %w", err)
	}

	return out.Bytes(), image.Pt(w, h), nil
}
