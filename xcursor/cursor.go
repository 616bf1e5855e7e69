package xcursor

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"deedles.dev/bitmap"
)

// Decoder implements codec.Decoder for cursor files. It returns the
// first image whose nominal size is closest to Size, or the first image
// if Size is zero.
type Decoder struct {
	Size int
}

func (d Decoder) TryRead(r io.Reader) (*bitmap.Bitmap, bool, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, false, err
	}
	if len(head) < 4 || binary.LittleEndian.Uint32(head) != fileMagic {
		return nil, false, nil
	}

	cur, err := Decode(br)
	if err != nil {
		return nil, false, err
	}

	img := cur.Images[0]
	if d.Size > 0 {
		img = cur.Images[cur.BestSize(d.Size)]
	}
	return img.Bitmap, true, nil
}

// Sizes returns the distinct nominal sizes of the images in c in the
// order that they first appear.
func (c *Cursor) Sizes() []int {
	var sizes []int
	seen := make(map[int]struct{})
	for _, img := range c.Images {
		if _, ok := seen[img.NominalSize]; ok {
			continue
		}
		seen[img.NominalSize] = struct{}{}
		sizes = append(sizes, img.NominalSize)
	}
	return sizes
}

// BestSize returns the index of the first image whose nominal size is
// closest to size. Ties go to the larger size.
func (c *Cursor) BestSize(size int) int {
	best := -1
	for i, img := range c.Images {
		if best < 0 {
			best = i
			continue
		}

		d, bd := abs(img.NominalSize-size), abs(c.Images[best].NominalSize-size)
		if d < bd || (d == bd && img.NominalSize > c.Images[best].NominalSize) {
			best = i
		}
	}
	return best
}

// Frames returns the images of c with the given nominal size, in
// animation order.
func (c *Cursor) Frames(size int) []*Image {
	var frames []*Image
	for _, img := range c.Images {
		if img.NominalSize == size {
			frames = append(frames, img)
		}
	}
	return frames
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
