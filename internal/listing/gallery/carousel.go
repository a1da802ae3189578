// Package gallery holds the navigation state for a listing's image carousel.
package gallery

import "fmt"

// Image is one gallery entry, in the order the server returned them
// (primary first).
type Image struct {
	URL       string
	IsPrimary bool
}

// Carousel is the navigable state over a fixed image sequence: a current
// index, wraparound next/previous, and an optional keyboard binding that
// lives from Mount to Unmount.
type Carousel struct {
	images  []Image
	current int
	unbind  []func()
}

func NewCarousel(images []Image) *Carousel {
	return &Carousel{images: images}
}

func (c *Carousel) Len() int          { return len(c.images) }
func (c *Carousel) CurrentIndex() int { return c.current }

func (c *Carousel) Current() (Image, bool) {
	if len(c.images) == 0 {
		return Image{}, false
	}
	return c.images[c.current], true
}

// Images returns the full sequence for the thumbnail strip; the entry at
// CurrentIndex is the featured one.
func (c *Carousel) Images() []Image { return c.images }

// Next advances with wraparound; no-op when empty.
func (c *Carousel) Next() {
	if len(c.images) == 0 {
		return
	}
	c.current = (c.current + 1) % len(c.images)
}

// Previous retreats with wraparound; no-op when empty.
func (c *Carousel) Previous() {
	if len(c.images) == 0 {
		return
	}
	c.current = (c.current - 1 + len(c.images)) % len(c.images)
}

// JumpTo is bounds-checked; out-of-range is a no-op and returns false.
func (c *Carousel) JumpTo(index int) bool {
	if index < 0 || index >= len(c.images) {
		return false
	}
	c.current = index
	return true
}

// Tap is a click on the featured image: advances like Next, but only when
// there is somewhere to go.
func (c *Carousel) Tap() {
	if len(c.images) > 1 {
		c.Next()
	}
}

// Counter renders the "i / N" position indicator.
func (c *Carousel) Counter() string {
	if len(c.images) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", c.current+1, len(c.images))
}

// Mount installs arrow-key navigation on the dispatcher. Bindings are only
// installed with two or more images and must be removed with Unmount before
// the view goes away. Mounting twice replaces the previous bindings.
func (c *Carousel) Mount(d *KeyDispatcher) {
	c.Unmount()
	if len(c.images) < 2 {
		return
	}
	c.unbind = append(c.unbind,
		d.Bind(KeyArrowRight, c.Next),
		d.Bind(KeyArrowLeft, c.Previous),
	)
}

// Unmount removes any installed key bindings. Safe to call when not mounted.
func (c *Carousel) Unmount() {
	for _, fn := range c.unbind {
		fn()
	}
	c.unbind = nil
}
