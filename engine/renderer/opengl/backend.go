// Package opengl implements the rhi Device and Context on OpenGL 4.5 core.
// All calls go through Functions and must happen on the thread that owns the
// current GL context.
package opengl

import (
	"fmt"

	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

// New creates a device and a context sharing one resource store.
func New(f Functions, limits rhi.Limits) (*Device, *Context, error) {
	store, err := NewResourceStore(limits)
	if err != nil {
		return nil, nil, fmt.Errorf("opengl: %w", err)
	}
	units := f.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS)
	if err := glErr(f); err != nil {
		return nil, nil, fmt.Errorf("opengl: query texture units: %w", err)
	}
	if limits.MaxTextureUnits > 0 && limits.MaxTextureUnits < units {
		units = limits.MaxTextureUnits
	}
	if units <= 0 {
		return nil, nil, fmt.Errorf("opengl: driver reports %d texture units: %w", units, core.ErrInvalidConfig)
	}

	state := newGLState()
	d := &Device{funcs: f, store: store, state: state}
	c := &Context{funcs: f, store: store, state: state, maxTextureUnits: units}
	core.LogInfo("opengl backend ready: %d texture units", units)
	return d, c, nil
}
