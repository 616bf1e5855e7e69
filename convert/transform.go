package convert

import (
	"errors"

	"deedles.dev/bitmap"
	"deedles.dev/bitmap/geom"
)

// Map replaces every pixel of v with the result of calling fn with its
// alpha-premultiplied 16-bit RGBA values.
func Map(v bitmap.View, fn func(r, g, b, a uint32) (uint32, uint32, uint32, uint32)) error {
	f := v.Format()
	size := f.ByteSize()
	for y := range v.Height() {
		row, err := v.MutableRow(y)
		if err != nil {
			return err
		}
		for x := range v.Width() {
			px := row[x*size : (x+1)*size]
			r, g, b, a := fn(f.Read(px))
			f.Write(px, r, g, b, a)
		}
	}
	return nil
}

// ForEach calls fn with the raw bytes of every pixel of v, which fn
// may modify in place.
func ForEach(v bitmap.View, fn func(x, y int, px []byte)) error {
	size := v.Format().ByteSize()
	for y := range v.Height() {
		row, err := v.MutableRow(y)
		if err != nil {
			return err
		}
		for x := range v.Width() {
			fn(x, y, row[x*size:(x+1)*size:(x+1)*size])
		}
	}
	return nil
}

// Mosaic arranges srcs in rows of at most cols tiles covering dst.
// Each source is converted to dst's format if necessary and scaled to
// fit centered inside of its tile with its aspect ratio preserved.
func Mosaic(dst bitmap.View, cols int, srcs ...bitmap.View) error {
	if !dst.Writable() {
		return bitmap.ErrReadOnly
	}

	tiles := make([]geom.Rect[int], len(srcs))
	geom.TileRows(tiles, dst.Info().Rect(), cols)

	var errs []error
	for i, src := range srcs {
		err := mosaicTile(dst, tiles[i], src)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func mosaicTile(dst bitmap.View, tile geom.Rect[int], src bitmap.View) error {
	if src.IsZero() {
		return nil
	}

	r := tile.Fit(src.Info().Rect().Size())
	if r.Empty() {
		return nil
	}

	if src.Format() != dst.Format() {
		c, err := Convert(src, dst.Format())
		if err != nil {
			return err
		}
		src = c.View()
	}

	sub, err := dst.Slice(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	if err != nil {
		return err
	}
	return ResizeInto(sub, src)
}
