package renderer

import (
	"fmt"

	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer/opengl"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
	Vulkan
	DirectX
	Metal
)

func (t RendererType) String() string {
	switch t {
	case OpenGL:
		return "opengl"
	case Vulkan:
		return "vulkan"
	case DirectX:
		return "directx"
	case Metal:
		return "metal"
	}
	return "unknown"
}

// ParseRendererType maps a config value to a RendererType.
func ParseRendererType(s string) (RendererType, error) {
	for _, t := range []RendererType{OpenGL, Vulkan, DirectX, Metal} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("renderer %q: %w", s, core.ErrInvalidConfig)
}

// Renderer owns the RHI device and context and brackets every frame.
type Renderer struct {
	device     rhi.Device
	context    rhi.Context
	width      uint32
	height     uint32
	clearColor rhi.ClearColor
	frame      uint64
}

// New creates a renderer for the requested backend. Only OpenGL is available;
// funcs must be loaded against the current GL context.
func New(rendererType RendererType, funcs opengl.Functions, limits rhi.Limits, width, height uint32) (*Renderer, error) {
	if rendererType != OpenGL {
		return nil, fmt.Errorf("renderer backend %s is not available: %w", rendererType, core.ErrInvalidConfig)
	}
	device, context, err := opengl.New(funcs, limits)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(device, context, width, height), nil
}

// NewWithBackend wraps an existing device and context.
func NewWithBackend(device rhi.Device, context rhi.Context, width, height uint32) *Renderer {
	return &Renderer{
		device:     device,
		context:    context,
		width:      width,
		height:     height,
		clearColor: rhi.ClearColor{R: 0.05, G: 0.05, B: 0.08, A: 1},
	}
}

func (r *Renderer) Device() rhi.Device {
	return r.device
}

func (r *Renderer) Context() rhi.Context {
	return r.context
}

func (r *Renderer) SetClearColor(c rhi.ClearColor) {
	r.clearColor = c
}

func (r *Renderer) Size() (uint32, uint32) {
	return r.width, r.height
}

// Frame is the number of frames ended so far.
func (r *Renderer) Frame() uint64 {
	return r.frame
}

// OnResize records the new framebuffer size. A zero size means the window is
// minimized and is ignored.
func (r *Renderer) OnResize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	r.width = width
	r.height = height
	core.LogDebug("renderer resized to %dx%d", width, height)
}

// BeginFrame targets the window framebuffer and clears it.
func (r *Renderer) BeginFrame(deltaTime float64) error {
	if r.width == 0 || r.height == 0 {
		return fmt.Errorf("begin frame with a %dx%d framebuffer", r.width, r.height)
	}
	r.context.BindDefaultRenderTarget()
	r.context.SetViewport(rhi.Viewport{Width: int32(r.width), Height: int32(r.height)})
	r.context.Clear(r.clearColor, 1)
	return nil
}

// EndFrame closes the pass opened by BeginFrame.
func (r *Renderer) EndFrame(deltaTime float64) error {
	r.context.EndPass()
	r.frame++
	return nil
}

func (r *Renderer) Shutdown() error {
	r.device.Shutdown()
	return nil
}
