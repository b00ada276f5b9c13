package bicubic

import (
	"fmt"
	"sync"

	errorsGo "github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"
)

// cursor hands out the cells of a width x height grid in row-major order,
// each exactly once, to any number of concurrent callers.
type cursor struct {
	mu     sync.Mutex
	x, y   int
	width  int
	height int
}

func newCursor(width, height int) *cursor {
	return &cursor{width: width, height: height}
}

// next returns the next unassigned cell. ok is false once the grid is
// exhausted, for this and every later call.
func (c *cursor) next() (x, y int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.y >= c.height {
		return 0, 0, false
	}
	x, y = c.x, c.y
	c.x++
	if c.x >= c.width {
		c.x = 0
		c.y++
	}
	return x, y, true
}

// runResize computes a width x height bicubic resize of src with the given
// number of worker goroutines. It returns only after every worker has exited.
// A panicking worker is reported as ErrInternal and no result is returned.
func runResize(src *raster, width, height, workers int) (*raster, error) {
	workers = max(workers, 1)

	dst := newCanvas(width, height, src.channels)
	cur := newCursor(width, height)

	var g errgroup.Group
	for n := range workers {
		g.Go(func() (err error) {
			defer recoverWorker(n, &err)
			for {
				x, y, ok := cur.next()
				if !ok {
					return nil
				}
				dst.set(x, y, computePixel(src, x, y, width, height))
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dst.dst, nil
}

// recoverWorker turns a worker panic into an error carrying the stack of
// the panicking goroutine.
func recoverWorker(n int, err *error) {
	if r := recover(); r != nil {
		*err = errorsGo.WrapPrefix(ErrInternal, fmt.Sprintf("worker %d: %v", n, r), 2)
	}
}
