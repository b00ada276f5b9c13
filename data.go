package bicubic

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	errorsGo "github.com/go-errors/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidFileName    = errors.New("invalid file name")
	ErrInvalidFormat      = errors.New("invalid format: only png, jpg/jpeg, bmp and tif/tiff are supported for output")
	ErrUnsupportedContent = errors.New("unsupported content: input is not a decodable image")
)

var fileNameRe = regexp.MustCompile(`^(.+)\.([^.]+)$`)

// jpegQuality is the quality used when encoding jpeg output.
const jpegQuality = 95

// FormatFromName returns the output format implied by the extension of fileName.
func FormatFromName(fileName string) (string, error) {
	matches := fileNameRe.FindStringSubmatch(filepath.Base(fileName))
	if len(matches) != 3 {
		return "", errorsGo.WrapPrefix(ErrInvalidFileName, fileName, 0)
	}

	format := strings.ToLower(matches[2])
	switch format {
	case "jpg":
		format = "jpeg"
	case "tif":
		format = "tiff"
	}
	switch format {
	case "png", "jpeg", "bmp", "tiff":
		return format, nil
	}
	return "", errorsGo.WrapPrefix(ErrInvalidFormat, format, 0)
}

// Load replaces the image with the contents of the file at path.
func (img *Image) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errorsGo.Wrap(err, 0)
	}
	defer f.Close()
	return img.Decode(f)
}

// Decode replaces the image with the one read from r.
// Opaque images become 3 channel rasters, all others 4 channel rasters.
func (img *Image) Decode(r io.Reader) error {
	ras, err := decodeRaster(r)
	if err != nil {
		return err
	}

	img.mu.Lock()
	defer img.mu.Unlock()
	img.ras = ras
	return nil
}

// Save writes the image to path in the format named by its extension.
func (img *Image) Save(path string) (err error) {
	format, err := FormatFromName(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errorsGo.Wrap(err, 0)
	}
	defer func() {
		if errClose := f.Close(); errClose != nil && err == nil {
			err = errorsGo.Wrap(errClose, 0)
		}
	}()
	return img.Encode(f, format)
}

// Encode writes the image to w as png, jpeg, bmp or tiff.
func (img *Image) Encode(w io.Writer, format string) error {
	img.mu.Lock()
	defer img.mu.Unlock()

	if img.ras == nil {
		return errorsGo.Wrap(ErrNoImage, 0)
	}
	return encodeRaster(w, img.ras, format)
}

func decodeRaster(r io.Reader) (*raster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errorsGo.Wrap(err, 0)
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, errorsGo.WrapPrefix(ErrUnsupportedContent, mime.String(), 0)
	}

	dec, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, errorsGo.WrapPrefix(ErrUnsupportedContent, mime.String(), 0)
	}
	if err != nil {
		return nil, errorsGo.WrapPrefix(err, "decode "+mime.String(), 0)
	}

	rect := dec.Bounds()
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, errorsGo.WrapPrefix(ErrInvalidDimension, fmt.Sprintf("%dx%d", w, h), 0)
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), dec, rect.Min, draw.Src)

	if !nrgba.Opaque() {
		return &raster{width: w, height: h, channels: 4, pix: nrgba.Pix}, nil
	}

	ras := newRaster(w, h, 3)
	for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+3 {
		copy(ras.pix[j:j+3], nrgba.Pix[i:i+3])
	}
	return ras, nil
}

// toImage exposes the raster as an image.Image without copying 4 channel data.
func (r *raster) toImage() image.Image {
	rect := image.Rect(0, 0, r.width, r.height)
	if r.channels == 4 {
		return &image.NRGBA{Pix: r.pix, Stride: r.width * 4, Rect: rect}
	}
	rgba := image.NewRGBA(rect)
	for i, j := 0, 0; j < len(r.pix); i, j = i+4, j+3 {
		copy(rgba.Pix[i:i+3], r.pix[j:j+3])
		rgba.Pix[i+3] = opaque
	}
	return rgba
}

func encodeRaster(w io.Writer, ras *raster, format string) error {
	m := ras.toImage()
	var err error
	switch format {
	case "png":
		err = png.Encode(w, m)
	case "jpeg", "jpg":
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		err = bmp.Encode(w, m)
	case "tiff", "tif":
		err = tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errorsGo.WrapPrefix(ErrInvalidFormat, format, 0)
	}
	if err != nil {
		return errorsGo.WrapPrefix(err, "encode "+format, 0)
	}
	return nil
}
