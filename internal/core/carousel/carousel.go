// Package carousel cycles the hero slide index shown on the storefront.
package carousel

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultInterval = 6 * time.Second

type Slide struct {
	Title    string
	Subtitle string
	ImageRef string
	CTA      string
	Badge    string
}

// DefaultSlides are shown when no slides are configured.
func DefaultSlides() []Slide {
	return []Slide{
		{
			Title:    "Black Friday Mega Sale",
			Subtitle: "Up to 70% off on premium electronics and fashion",
			ImageRef: "https://images.pexels.com/photos/5632402/pexels-photo-5632402.jpeg",
			CTA:      "Shop Sale",
			Badge:    "Limited Time",
		},
		{
			Title:    "New Arrivals Collection",
			Subtitle: "Discover the latest trends in tech and lifestyle",
			ImageRef: "https://images.pexels.com/photos/1927259/pexels-photo-1927259.jpeg",
			CTA:      "Explore New",
			Badge:    "Just Launched",
		},
		{
			Title:    "Premium Home Essentials",
			Subtitle: "Transform your space with luxury home products",
			ImageRef: "https://images.pexels.com/photos/1571460/pexels-photo-1571460.jpeg",
			CTA:      "Shop Home",
			Badge:    "Best Sellers",
		},
		{
			Title:    "Fitness & Wellness",
			Subtitle: "Achieve your health goals with premium equipment",
			ImageRef: "https://images.pexels.com/photos/416778/pexels-photo-416778.jpeg",
			CTA:      "Get Fit",
			Badge:    "Trending",
		},
	}
}

type Carousel struct {
	mu       sync.Mutex
	slides   []Slide
	current  int
	interval time.Duration
	restart  chan struct{}
}

func New(slides []Slide, interval time.Duration) *Carousel {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Carousel{
		slides:   slides,
		interval: interval,
		restart:  make(chan struct{}, 1),
	}
}

// Current returns the visible slide index and the slide itself.
// ok is false when there are no slides.
func (c *Carousel) Current() (idx int, s Slide, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.slides) == 0 {
		return 0, Slide{}, false
	}
	return c.current, c.slides[c.current], true
}

func (c *Carousel) Next() int {
	return c.step(1)
}

func (c *Carousel) Prev() int {
	return c.step(-1)
}

func (c *Carousel) Len() int {
	return len(c.slides)
}

func (c *Carousel) step(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.slides)
	if n == 0 {
		return 0
	}
	c.current = (c.current + delta + n) % n
	return c.current
}

// Reset moves back to the first slide and restarts the rotation period.
func (c *Carousel) Reset() {
	c.mu.Lock()
	c.current = 0
	c.mu.Unlock()

	select {
	case c.restart <- struct{}{}:
	default:
	}
}

// Run advances the slide every interval until ctx is done.
func (c *Carousel) Run(ctx context.Context, wg *sync.WaitGroup) {
	const op = "Carousel.Run"
	log := slog.With("op", op)

	defer wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	log.Debug("rotation started", "interval", c.interval)
	for {
		select {
		case <-ctx.Done():
			log.Debug("rotation stopped")
			return
		case <-c.restart:
			ticker.Reset(c.interval)
		case <-ticker.C:
			c.Next()
		}
	}
}
