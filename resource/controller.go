package resource

import (
	"context"
	"io"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds limits for parallel score loading.
type Config struct {
	// MaxConcurrentLoads is the maximum number of files read at once.
	// If 0, defaults to 1.
	MaxConcurrentLoads int64

	// IOLimitBytesPerSec caps the combined read throughput.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller bounds load concurrency and read throughput.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	loadSem   *semaphore.Weighted
	ioLimiter *rate.Limiter

	active    atomic.Int64
	bytesRead atomic.Int64
}

// NewController creates a controller for cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentLoads <= 0 {
		cfg.MaxConcurrentLoads = 1
	}

	c := &Controller{
		cfg:     cfg,
		loadSem: semaphore.NewWeighted(cfg.MaxConcurrentLoads),
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// Config returns the effective configuration. A nil controller reports one
// load at a time and no IO limit.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{MaxConcurrentLoads: 1}
	}
	return c.cfg
}

// AcquireLoad blocks until a load slot is free or ctx is done.
func (c *Controller) AcquireLoad(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.loadSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.active.Add(1)
	return nil
}

// ReleaseLoad frees a slot taken by AcquireLoad.
func (c *Controller) ReleaseLoad() {
	if c == nil {
		return
	}
	c.active.Add(-1)
	c.loadSem.Release(1)
}

// ActiveLoads returns the number of slots in use.
func (c *Controller) ActiveLoads() int64 {
	if c == nil {
		return 0
	}
	return c.active.Load()
}

// BytesRead returns the bytes passed through readers from this controller.
func (c *Controller) BytesRead() int64 {
	if c == nil {
		return 0
	}
	return c.bytesRead.Load()
}

// AcquireIO waits until the IO limit allows n bytes.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}
	return c.ioLimiter.WaitN(ctx, n)
}

// Reader wraps r so that reads count against the IO limit.
func (c *Controller) Reader(ctx context.Context, r io.Reader) io.Reader {
	if c == nil {
		return r
	}
	return &limitedReader{ctx: ctx, r: r, c: c}
}

type limitedReader struct {
	ctx context.Context
	r   io.Reader
	c   *Controller
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.c.ioLimiter != nil {
		// WaitN rejects requests larger than the burst.
		if burst := lr.c.ioLimiter.Burst(); len(p) > burst {
			p = p[:burst]
		}
		if err := lr.c.AcquireIO(lr.ctx, len(p)); err != nil {
			return 0, err
		}
	}
	n, err := lr.r.Read(p)
	lr.c.bytesRead.Add(int64(n))
	return n, err
}
