//go:build !linux

package headless

import (
	"fmt"

	"github.com/richinsley/glplatform/graphics"
)

// Headless is unavailable on this platform; NewHeadless always fails.
type Headless struct{}

var _ graphics.Context = (*Headless)(nil)

func NewHeadless(width, height int) (*Headless, error) {
	return nil, fmt.Errorf("egl headless rendering is not supported on this platform")
}

func (h *Headless) MakeCurrent()                   {}
func (h *Headless) IsCurrent() bool                { return false }
func (h *Headless) Shutdown()                      {}
func (h *Headless) ShouldClose() bool              { return true }
func (h *Headless) EndFrame()                      {}
func (h *Headless) GetFramebufferSize() (int, int) { return 0, 0 }
func (h *Headless) Time() float64                  { return 0 }
