package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // camera screenshots may arrive as PNG

	xdraw "golang.org/x/image/draw"
)

const (
	// maxFrameDim caps camera frames; viewfinder screenshots can be huge on
	// high-DPI devices and anything beyond this adds nothing for a document
	// photo.
	maxFrameDim = 1600

	frameJPEGQuality = 90
)

// normalizeFrame decodes a camera frame and re-encodes it as JPEG, scaling
// down frames larger than maxFrameDim. Whatever format the viewfinder
// produced, the resulting bytes match the file-upload artifact shape.
func normalizeFrame(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("capture: decode frame: %w", err)
	}

	img = scaleDown(img, maxFrameDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: frameJPEGQuality}); err != nil {
		return nil, fmt.Errorf("capture: encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// scaleDown resizes img so its longer edge is at most maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func scaleDown(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = h * maxDim / w
	} else {
		nh = maxDim
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
