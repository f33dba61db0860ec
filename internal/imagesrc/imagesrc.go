// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagesrc is the external collaborator that decodes, resamples,
// and grayscale-converts the target image (§6 "Inputs"). None of this is
// part of the hard core; the engine only ever consumes the resulting
// grayscale grid.
package imagesrc

import (
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/nfnt/resize"
)

// Load decodes the image at path, resizes it to resX×resY with an
// external resampler, and converts it to a normalized [0,1] grayscale
// grid using the standard luma weights (§6: "0.299R+0.587G+0.114B").
func Load(path string, resX, resY int) (pixels [][]float64, aspectRatio float64) {
	f, err := os.Open(path)
	if err != nil {
		chk.Panic("imagesrc.Load: cannot open %q: %v", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		chk.Panic("imagesrc.Load: cannot decode %q: %v", path, err)
	}

	b := src.Bounds()
	aspectRatio = float64(b.Dy()) / float64(b.Dx())

	resized := resize.Resize(uint(resX), uint(resY), src, resize.Bilinear)

	pixels = make([][]float64, resY)
	for i := 0; i < resY; i++ {
		pixels[i] = make([]float64, resX)
		for j := 0; j < resX; j++ {
			r, g, bl, _ := resized.At(j, i).RGBA()
			// RGBA() returns 16-bit-scaled channels; normalize to [0,1].
			rf := float64(r) / 65535
			gf := float64(g) / 65535
			bf := float64(bl) / 65535
			pixels[i][j] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}
	return pixels, aspectRatio
}

// SaveGrayPNG writes a [0,1]-valued grid as an 8-bit grayscale PNG, used
// for the optional diagnostic images of §6 (raster, φ, gradient, height,
// divergence) after proportional rescaling by the caller.
func SaveGrayPNG(path string, pixels [][]float64) error {
	h := len(pixels)
	if h == 0 {
		return nil
	}
	w := len(pixels[0])
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			v := pixels[i][j]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray(j, i, color.Gray{Y: uint8(v * 255)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
