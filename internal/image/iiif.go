// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"fmt"
	"math"
	"strings"
)

// # IIIF Image API

// thumbnailSize is the IIIF size parameter of thumbnails (height 300, width scaled).
const thumbnailSize = ",300"

// Region is a pixel box in IIIF region order.
type Region struct {
	X, Y, W, H int
}

// String renders the region as the IIIF "x,y,w,h" parameter.
func (region Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", region.X, region.Y, region.W, region.H)
}

/*
PixelRegion converts a fractional (x, y, w, h) box to pixels.

Each fraction is clamped to [0, 1] and scaled by the matching side; the box is
then cut at the image border. The second result is false when the input does
not have four components, the dimensions are unknown, or the box is empty.
*/
func PixelRegion(fraction []float64, dimensions Dimensions) (Region, bool) {
	if len(fraction) != 4 || !dimensions.Valid() {
		return Region{}, false
	}

	scale := func(value float64, side int) int {
		if math.IsNaN(value) {
			return 0
		}
		return int(math.Round(min(max(value, 0), 1) * float64(side)))
	}

	region := Region{
		X: scale(fraction[0], dimensions.Width),
		Y: scale(fraction[1], dimensions.Height),
		W: scale(fraction[2], dimensions.Width),
		H: scale(fraction[3], dimensions.Height),
	}

	region.W = min(region.W, dimensions.Width-region.X)
	region.H = min(region.H, dimensions.Height-region.Y)

	if region.W <= 0 || region.H <= 0 {
		return Region{}, false
	}
	return region, true
}

// URLBuilder derives IIIF endpoints from a server base URL ending in "/".
type URLBuilder struct {
	base string
}

// NewURLBuilder returns a builder for base, adding the trailing slash if missing.
func NewURLBuilder(base string) URLBuilder {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return URLBuilder{base: base}
}

// Image returns the IIIF image identifier URL of file.
func (builder URLBuilder) Image(file string) string {
	return builder.base + strings.TrimPrefix(file, "/")
}

// Info returns the info.json URL of file.
func (builder URLBuilder) Info(file string) string {
	return builder.Image(file) + "/info.json"
}

// Thumbnail returns a reduced rendering of the full image.
func (builder URLBuilder) Thumbnail(file string) string {
	return fmt.Sprintf("%s/full/%s/0/default.jpg", builder.Image(file), thumbnailSize)
}

// Crop returns the full-size rendering of region.
func (builder URLBuilder) Crop(file string, region Region) string {
	return fmt.Sprintf("%s/%s/full/0/default.jpg", builder.Image(file), region)
}

// Decorate fills the derived URL fields of image.
func (builder URLBuilder) Decorate(image *Image) {
	if image.IIIFFile == nil || *image.IIIFFile == "" {
		return
	}

	file := *image.IIIFFile
	image.IIIFURL = builder.Image(file)
	image.ThumbnailURL = builder.Thumbnail(file)

	if image.Width == nil || image.Height == nil {
		return
	}
	if region, ok := PixelRegion(image.Region, Dimensions{Width: *image.Width, Height: *image.Height}); ok {
		image.RegionURL = builder.Crop(file, region)
	}
}
