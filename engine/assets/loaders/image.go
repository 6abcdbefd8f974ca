package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrEmptyAsset = errors.New("asset is empty")

// Image is a decoded image in tightly packed RGBA8, ready for a texture upload.
type Image struct {
	Width  uint32
	Height uint32
	Pixels []byte
}

type ImageLoader struct {
	// FlipY stores the rows bottom-up, the order OpenGL expects for texture data.
	FlipY bool
}

func (il *ImageLoader) Load(path string) (any, error) {
	return LoadImage(path, il.FlipY)
}

func LoadImage(path string, flipY bool) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeImage(f, flipY)
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", path, err)
	}
	return img, nil
}

func DecodeImage(r io.Reader, flipY bool) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, ErrEmptyAsset
	}

	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	}

	out := &Image{
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
		Pixels: rgba.Pix,
	}
	if flipY {
		flipRows(out.Pixels, b.Dx()*4, b.Dy())
	}
	return out, nil
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, t)
		copy(t, b)
		copy(b, tmp)
	}
}
