package bicubic

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"
	errorsGo "github.com/go-errors/errors"

	"github.com/obzva/bicubic/internal/logx"
)

// DefaultWorkers is the number of resize workers used unless configured otherwise.
const DefaultWorkers = 4

var (
	ErrInvalidDimension = errors.New("invalid dimension: width and height must be positive integers")
	ErrInvalidChannels  = errors.New("invalid channel count: only 3 and 4 channel images are supported")
	ErrBufferSize       = errors.New("invalid buffer: length must equal width*height*channels")
	ErrNoImage          = errors.New("no image loaded: load an image before resizing it")
	ErrInternal         = errors.New("internal consistency failure")
)

// Option configures an Image.
type Option func(*Image)

// WithWorkers sets the number of resize workers. n <= 0 selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(img *Image) { img.workers = normalizeWorkers(n) }
}

// WithLogger sets the logger used for resize diagnostics. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(img *Image) { img.logger = logger }
}

// Image holds one 8-bit raster with 3 (RGB) or 4 (RGBA) interleaved channels.
//
// All methods are safe for concurrent use. Resize holds the image lock for
// its whole run, so resizes of one Image never overlap and readers observe
// either the old or the new raster, never a partial one.
type Image struct {
	mu      sync.Mutex
	ras     *raster
	workers int
	logger  *slog.Logger
}

// New creates an empty Image. Load or Decode must be called before Resize.
func New(opts ...Option) *Image {
	img := &Image{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(img)
	}
	return img
}

// NewFromBuffer creates an Image that takes ownership of buf.
func NewFromBuffer(width, height, channels int, buf []byte, opts ...Option) (*Image, error) {
	ras, err := checkedRaster(width, height, channels, buf)
	if err != nil {
		return nil, err
	}
	img := New(opts...)
	img.ras = ras
	return img, nil
}

func checkedRaster(width, height, channels int, buf []byte) (*raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errorsGo.WrapPrefix(ErrInvalidDimension, fmt.Sprintf("%dx%d", width, height), 1)
	}
	if channels != 3 && channels != 4 {
		return nil, errorsGo.WrapPrefix(ErrInvalidChannels, fmt.Sprintf("%d channels", channels), 1)
	}
	if len(buf) != width*height*channels {
		return nil, errorsGo.WrapPrefix(ErrBufferSize, fmt.Sprintf("got %d, want %d", len(buf), width*height*channels), 1)
	}
	return &raster{width: width, height: height, channels: channels, pix: buf}, nil
}

func normalizeWorkers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// SetWorkers changes the number of resize workers. n <= 0 selects GOMAXPROCS.
func (img *Image) SetWorkers(n int) {
	img.mu.Lock()
	defer img.mu.Unlock()
	img.workers = normalizeWorkers(n)
}

func (img *Image) Workers() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	return img.workers
}

func (img *Image) Width() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.ras == nil {
		return 0
	}
	return img.ras.width
}

func (img *Image) Height() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.ras == nil {
		return 0
	}
	return img.ras.height
}

func (img *Image) Channels() int {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.ras == nil {
		return 0
	}
	return img.ras.channels
}

// Buffer returns a copy of the pixel buffer, or nil if nothing is loaded.
func (img *Image) Buffer() []byte {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.ras == nil {
		return nil
	}
	return append([]byte(nil), img.ras.pix...)
}

// Pixel returns the pixel at (x, y). Alpha is 255 for 3 channel images.
func (img *Image) Pixel(x, y int) (Pixel, error) {
	img.mu.Lock()
	defer img.mu.Unlock()
	if img.ras == nil {
		return Pixel{}, errorsGo.Wrap(ErrNoImage, 0)
	}
	if x < 0 || x >= img.ras.width || y < 0 || y >= img.ras.height {
		return Pixel{}, errorsGo.Errorf("pixel (%d,%d) out of bounds for %dx%d image", x, y, img.ras.width, img.ras.height)
	}
	return img.ras.at(x, y), nil
}

// Resize resamples the image to width x height with bicubic interpolation.
//
// Dimensions are validated before anything is allocated. On failure the
// image is left unchanged.
func (img *Image) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errorsGo.WrapPrefix(ErrInvalidDimension, fmt.Sprintf("%dx%d", width, height), 0)
	}

	img.mu.Lock()
	defer img.mu.Unlock()

	if img.ras == nil {
		return errorsGo.Wrap(ErrNoImage, 0)
	}
	src := img.ras

	logx.Debug(`resize started`, img.logger,
		`src`, fmt.Sprintf("%dx%d", src.width, src.height),
		`dst`, fmt.Sprintf("%dx%d", width, height),
		`channels`, src.channels,
		`workers`, img.workers,
		`alloc`, humanize.IBytes(uint64(width*height*src.channels)))

	dst, err := logx.TimeIt(func() (*raster, error) {
		return runResize(src, width, height, img.workers)
	}, `resize`, img.logger, `dst`, fmt.Sprintf("%dx%d", width, height))
	if err != nil {
		return err
	}

	img.ras = dst
	return nil
}
