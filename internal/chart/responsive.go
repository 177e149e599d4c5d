package chart

import (
	"sync"
)

// ════════════════════════════════════════════════════════════════════
// Responsive Container
// ════════════════════════════════════════════════════════════════════

// Size is a computed width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// ResponsiveOptions controls how a container derives its size from the
// observed parent width. When Height is set it is passed through as
// given; otherwise, with a positive Aspect, height is Width/Aspect;
// with neither, the container is square.
type ResponsiveOptions struct {
	Height float64
	Aspect float64
}

// ResponsiveContainer subscribes to a width-notification channel and
// propagates the derived {width, height} to registered render
// callbacks, so chart renderers can fill responsive layouts without
// each one re-implementing measurement logic.
//
// The subscription is acquired on New and released by Close; Close is
// safe to call more than once.
type ResponsiveContainer struct {
	mu       sync.RWMutex
	opts     ResponsiveOptions
	cur      Size
	children []func(Size)

	done     chan struct{}
	closeOne sync.Once
}

// NewResponsiveContainer starts observing widths. Each value received
// recomputes the derived size and notifies every registered child.
func NewResponsiveContainer(widths <-chan float64, opts ResponsiveOptions) *ResponsiveContainer {
	c := &ResponsiveContainer{
		opts: opts,
		done: make(chan struct{}),
	}
	go c.observe(widths)
	return c
}

func (c *ResponsiveContainer) observe(widths <-chan float64) {
	for {
		select {
		case w, ok := <-widths:
			if !ok {
				return
			}
			// A width raced with Close: drop it rather than resize a
			// torn-down container.
			select {
			case <-c.done:
				return
			default:
			}
			c.resize(w)
		case <-c.done:
			return
		}
	}
}

func (c *ResponsiveContainer) resize(width float64) {
	size := Size{Width: width, Height: c.deriveHeight(width)}

	c.mu.Lock()
	c.cur = size
	children := make([]func(Size), len(c.children))
	copy(children, c.children)
	c.mu.Unlock()

	for _, fn := range children {
		fn(size)
	}
}

func (c *ResponsiveContainer) deriveHeight(width float64) float64 {
	switch {
	case c.opts.Height > 0:
		return c.opts.Height
	case c.opts.Aspect > 0:
		return width / c.opts.Aspect
	default:
		return width
	}
}

// OnResize registers a child callback. It is invoked with the current
// size immediately if one has been observed, then on every change.
func (c *ResponsiveContainer) OnResize(fn func(Size)) {
	c.mu.Lock()
	c.children = append(c.children, fn)
	cur := c.cur
	c.mu.Unlock()

	if cur.Width > 0 {
		fn(cur)
	}
}

// Size returns the most recently derived size.
func (c *ResponsiveContainer) Size() Size {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur
}

// Close releases the width subscription. No callbacks fire after Close
// returns aside from one already in flight.
func (c *ResponsiveContainer) Close() {
	c.closeOne.Do(func() { close(c.done) })
}
