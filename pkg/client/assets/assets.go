package assets

import (
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
)

// IconSize is the edge of a generated icon in pixels.
const IconSize = 32

var (
	mu     sync.Mutex
	images = make(map[string]*ebiten.Image)
)

// Load generates the icons for handles up front.
func Load(handles ...string) {
	for _, h := range handles {
		GetImage(h)
	}
	log.Printf("Assets loaded (%d icons).", len(handles))
}

// GetImage returns the icon for an image handle, generating it on first use.
// The empty handle has no image.
func GetImage(handle string) *ebiten.Image {
	if handle == "" {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	if img, ok := images[handle]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(IconPixels(handle))
	images[handle] = img
	return img
}

// IconPixels draws the placeholder art for handle. The same handle always
// yields the same picture: a filled shape in a color derived from its hash.
func IconPixels(handle string) *image.RGBA {
	sum := xxhash.Sum64String(handle)
	c := color.RGBA{
		R: 64 + uint8(sum>>0)%192,
		G: 64 + uint8(sum>>8)%192,
		B: 64 + uint8(sum>>16)%192,
		A: 255,
	}
	shape := (sum >> 24) % 3

	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	const mid = IconSize / 2
	for y := 0; y < IconSize; y++ {
		for x := 0; x < IconSize; x++ {
			dx, dy := x-mid, y-mid
			var in bool
			switch shape {
			case 0: // circle
				in = dx*dx+dy*dy <= (mid-2)*(mid-2)
			case 1: // diamond
				in = abs(dx)+abs(dy) <= mid-2
			default: // rounded square
				in = abs(dx) <= mid-3 && abs(dy) <= mid-3
			}
			if in {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
