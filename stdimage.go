package bitmap

import (
	"image"

	"deedles.dev/bitmap/format"
)

// Borrow returns a view of the pixel memory of img without copying
// it. It supports the standard library's directly addressable image
// types, Bitmaps and Views.
func Borrow(img image.Image) (View, bool) {
	var (
		pix    []byte
		stride int
		rect   image.Rectangle
		f      format.Format
	)
	switch img := img.(type) {
	case View:
		return img, !img.IsZero()
	case *Bitmap:
		return img.View(), true
	case *image.RGBA:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.RGBA32Premul
	case *image.NRGBA:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.RGBA32
	case *image.RGBA64:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.RGBA64BEPremul
	case *image.NRGBA64:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.RGBA64BE
	case *image.Gray:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.Gray8
	case *image.Gray16:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.Gray16BE
	case *image.Alpha:
		pix, stride, rect, f = img.Pix, img.Stride, img.Rect, format.Alpha8
	default:
		return View{}, false
	}

	v, err := NewView(pix, Info{
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Stride: stride,
		Format: f,
	})
	return v, err == nil
}

// Image returns a standard library image sharing v's memory if v's
// format has a matching image type, or v itself otherwise. The returned
// image's bounds start at the origin. Images returned for read-only
// views must not be modified.
func (v View) Image() image.Image {
	pix, stride, rect := v.pix, v.info.Stride, v.Bounds()
	switch v.info.Format {
	case format.RGBA32Premul:
		return &image.RGBA{Pix: pix, Stride: stride, Rect: rect}
	case format.RGBA32:
		return &image.NRGBA{Pix: pix, Stride: stride, Rect: rect}
	case format.RGBA64BEPremul:
		return &image.RGBA64{Pix: pix, Stride: stride, Rect: rect}
	case format.RGBA64BE:
		return &image.NRGBA64{Pix: pix, Stride: stride, Rect: rect}
	case format.Gray8:
		return &image.Gray{Pix: pix, Stride: stride, Rect: rect}
	case format.Gray16BE:
		return &image.Gray16{Pix: pix, Stride: stride, Rect: rect}
	case format.Alpha8:
		return &image.Alpha{Pix: pix, Stride: stride, Rect: rect}
	default:
		return v
	}
}

// FromImage copies img into a new Bitmap of format f, converting each
// pixel through its RGBA values.
func FromImage(img image.Image, f format.Format) (*Bitmap, error) {
	if v, ok := Borrow(img); ok && v.info.Format == f {
		return v.Copy(), nil
	}

	r := img.Bounds()
	b, err := NewBitmap(r.Dx(), r.Dy(), f)
	if err != nil {
		return nil, err
	}

	size := f.ByteSize()
	for y := range r.Dy() {
		row := b.View().Row(y)
		for x := range r.Dx() {
			cr, cg, cb, ca := img.At(r.Min.X+x, r.Min.Y+y).RGBA()
			f.Write(row[x*size:], cr, cg, cb, ca)
		}
	}
	return b, nil
}
