package chart

import (
	"testing"
	"time"
)

// waitForSize polls until the container reports the wanted width or the
// deadline passes.
func waitForSize(t *testing.T, c *ResponsiveContainer, width float64) Size {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := c.Size(); s.Width == width {
			return s
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for width %v (have %v)", width, c.Size())
	return Size{}
}

func TestResponsiveContainer_AspectDerivesHeight(t *testing.T) {
	widths := make(chan float64)
	c := NewResponsiveContainer(widths, ResponsiveOptions{Aspect: 2})
	defer c.Close()

	widths <- 800
	s := waitForSize(t, c, 800)
	if s.Height != 400 {
		t.Errorf("height = %v, want width/aspect = 400", s.Height)
	}

	widths <- 500
	s = waitForSize(t, c, 500)
	if s.Height != 250 {
		t.Errorf("height = %v, want 250 after resize", s.Height)
	}
}

func TestResponsiveContainer_FixedHeightPassedThrough(t *testing.T) {
	widths := make(chan float64)
	c := NewResponsiveContainer(widths, ResponsiveOptions{Height: 320, Aspect: 2})
	defer c.Close()

	widths <- 1000
	s := waitForSize(t, c, 1000)
	if s.Height != 320 {
		t.Errorf("fixed height must win over aspect: got %v, want 320", s.Height)
	}
}

func TestResponsiveContainer_SquareDefault(t *testing.T) {
	widths := make(chan float64)
	c := NewResponsiveContainer(widths, ResponsiveOptions{})
	defer c.Close()

	widths <- 240
	s := waitForSize(t, c, 240)
	if s.Height != 240 {
		t.Errorf("height = %v, want square 240", s.Height)
	}
}

func TestResponsiveContainer_NotifiesChildren(t *testing.T) {
	widths := make(chan float64)
	c := NewResponsiveContainer(widths, ResponsiveOptions{Aspect: 4})
	defer c.Close()

	got := make(chan Size, 4)
	c.OnResize(func(s Size) { got <- s })

	widths <- 400
	select {
	case s := <-got:
		if s.Width != 400 || s.Height != 100 {
			t.Errorf("child notified with %v, want {400 100}", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("child callback never fired")
	}
}

func TestResponsiveContainer_LateChildGetsCurrentSize(t *testing.T) {
	widths := make(chan float64)
	c := NewResponsiveContainer(widths, ResponsiveOptions{})
	defer c.Close()

	widths <- 300
	waitForSize(t, c, 300)

	got := make(chan Size, 1)
	c.OnResize(func(s Size) { got <- s })

	select {
	case s := <-got:
		if s.Width != 300 {
			t.Errorf("late child got %v, want current width 300", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("late child was not primed with the current size")
	}
}

func TestResponsiveContainer_CloseStopsUpdates(t *testing.T) {
	widths := make(chan float64, 4)
	c := NewResponsiveContainer(widths, ResponsiveOptions{})

	widths <- 100
	waitForSize(t, c, 100)

	c.Close()
	c.Close() // idempotent

	// Sent after Close: must not be observed.
	widths <- 999
	time.Sleep(20 * time.Millisecond)
	if s := c.Size(); s.Width == 999 {
		t.Error("container processed a resize after Close")
	}
}

func TestResponsiveContainer_ChannelCloseEndsObservation(t *testing.T) {
	widths := make(chan float64)
	c := NewResponsiveContainer(widths, ResponsiveOptions{})
	defer c.Close()

	close(widths)
	time.Sleep(10 * time.Millisecond)
	if s := c.Size(); s.Width != 0 {
		t.Errorf("expected zero size after producer closed, got %v", s)
	}
}
