package opengl

import (
	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

// Context binds resources and issues draws on the current GL context.
type Context struct {
	funcs Functions
	store *ResourceStore
	state *glState

	activeProgram      rhi.ProgramHandle
	activeVertexBuffer rhi.VertexBufferHandle
	activeIndexBuffer  rhi.IndexBufferHandle
	activeRenderTarget rhi.RenderTargetHandle
	// activeTextures counts the units used in this pass; unitTargets keeps the
	// target bound on each of them.
	activeTextures  int
	unitTargets     []Enum
	maxTextureUnits int
}

var _ rhi.Context = (*Context)(nil)

func (c *Context) MaxTextureUnits() int {
	return c.maxTextureUnits
}

// ActiveProgram is the program set by the last BindShaderProgram.
func (c *Context) ActiveProgram() rhi.ProgramHandle {
	return c.activeProgram
}

// ActiveRenderTarget is invalid while drawing to the default framebuffer.
func (c *Context) ActiveRenderTarget() rhi.RenderTargetHandle {
	return c.activeRenderTarget
}

// ActiveTextures is the number of texture units bound since the last reset.
func (c *Context) ActiveTextures() int {
	return c.activeTextures
}

func (c *Context) BindShaderProgram(h rhi.ProgramHandle) {
	p := c.store.Programs.Get(h)
	c.state.useProgram(c.funcs, p.ID)
	c.activeProgram = h
}

// program returns the active program. Binding without one is a precondition
// violation.
func (c *Context) program() (*GlProgram, bool) {
	core.Assert(c.activeProgram.IsValid(), "no active program")
	if !c.activeProgram.IsValid() {
		core.LogError("no active program")
		return nil, false
	}
	return c.store.Programs.Get(c.activeProgram), true
}

// resolve finds the active uniform of the bound program that u refers to.
func (c *Context) resolve(u *RIUniform) (*activeUniform, *GlProgram, bool) {
	p, ok := c.program()
	if !ok {
		return nil, nil, false
	}
	info, found := c.store.existing.find(u.Name, u.Hash, p.ID)
	if !found {
		core.LogError("uniform %q is not active in program %s", u.Name, p.Label)
		return nil, nil, false
	}
	return info, p, true
}

func (c *Context) BindUniform(h rhi.UniformHandle, data any) {
	u := c.store.Uniforms.Get(h)
	info, _, ok := c.resolve(u)
	if !ok {
		return
	}
	if info.block || !isBasicType(info.typ) {
		core.LogError("uniform %q is not a basic uniform", u.Name)
		return
	}
	if declared, _ := uniformTypeOf(info.typ); declared != u.Type {
		core.LogError("uniform %q is declared %s in the program, bound as %s", u.Name, declared, u.Type)
		return
	}

	floats, ints, ok := uniformValues(data)
	if !ok {
		core.LogError("uniform %q: unsupported value of type %T", u.Name, data)
		return
	}
	components := u.Type.Components()
	if u.Type == rhi.UniformInt {
		if ints == nil {
			core.LogError("uniform %q wants integer data, got %T", u.Name, data)
			return
		}
		n := min(int(info.size), len(ints))
		if n == 0 {
			core.LogError("uniform %q: no values", u.Name)
			return
		}
		c.funcs.Uniform1iv(info.location, ints[:n])
		return
	}
	if floats == nil {
		core.LogError("uniform %q wants float data, got %T", u.Name, data)
		return
	}
	n := min(int(info.size), len(floats)/components)
	if n == 0 {
		core.LogError("uniform %q: %s needs %d floats, got %d", u.Name, u.Type, components, len(floats))
		return
	}
	v := floats[:n*components]
	switch info.typ {
	case FLOAT:
		c.funcs.Uniform1fv(info.location, v)
	case FLOAT_VEC2:
		c.funcs.Uniform2fv(info.location, v)
	case FLOAT_VEC3:
		c.funcs.Uniform3fv(info.location, v)
	case FLOAT_VEC4:
		c.funcs.Uniform4fv(info.location, v)
	case FLOAT_MAT3:
		c.funcs.UniformMatrix3fv(info.location, v)
	case FLOAT_MAT4:
		c.funcs.UniformMatrix4fv(info.location, v)
	}
}

// uniformValues flattens the values BindUniform accepts into float or int
// slices.
func uniformValues(data any) ([]float32, []int32, bool) {
	switch v := data.(type) {
	case float32:
		return []float32{v}, nil, true
	case []float32:
		return v, nil, true
	case [2]float32:
		return v[:], nil, true
	case [3]float32:
		return v[:], nil, true
	case [4]float32:
		return v[:], nil, true
	case [9]float32:
		return v[:], nil, true
	case [16]float32:
		return v[:], nil, true
	case int32:
		return nil, []int32{v}, true
	case int:
		return nil, []int32{int32(v)}, true
	case bool:
		if v {
			return nil, []int32{1}, true
		}
		return nil, []int32{0}, true
	case []int32:
		return nil, v, true
	}
	return nil, nil, false
}

func (c *Context) BindTexture(sampler rhi.UniformHandle, tex rhi.Texture2DHandle) {
	c.bindSampler(sampler, c.store.Textures2D.Get(tex), rhi.UniformSampler2D)
}

func (c *Context) BindTextureCube(sampler rhi.UniformHandle, tex rhi.TextureCubeHandle) {
	c.bindSampler(sampler, c.store.TexturesCube.Get(tex), rhi.UniformSamplerCube)
}

func (c *Context) bindSampler(sampler rhi.UniformHandle, t *GlTexture, kind rhi.UniformType) {
	u := c.store.Uniforms.Get(sampler)
	info, _, ok := c.resolve(u)
	if !ok {
		return
	}
	declared, _ := uniformTypeOf(info.typ)
	if declared != kind || u.Type != kind {
		core.Assert(false, "sampler %q is declared %s, bound a %s texture", u.Name, declared, kind)
		core.LogError("sampler %q is declared %s, bound a %s texture", u.Name, declared, kind)
		return
	}
	if c.activeTextures >= c.maxTextureUnits {
		core.Assert(false, "texture unit overflow: all %d units are in use", c.maxTextureUnits)
		core.LogError("texture unit overflow: all %d units are in use, skipping %q", c.maxTextureUnits, u.Name)
		return
	}
	unit := c.activeTextures
	c.activeTextures++
	c.unitTargets = append(c.unitTargets[:unit], t.Target)
	c.state.activeTexture(c.funcs, TEXTURE0+Enum(unit))
	c.state.bindTexture(c.funcs, t.Target, t.ID)
	c.funcs.Uniform1i(info.location, int32(unit))
}

// UnbindTextures unbinds every unit used in this pass and resets the counter.
func (c *Context) UnbindTextures() {
	for unit, target := range c.unitTargets[:c.activeTextures] {
		c.state.activeTexture(c.funcs, TEXTURE0+Enum(unit))
		c.state.bindTexture(c.funcs, target, 0)
	}
	c.activeTextures = 0
	c.unitTargets = c.unitTargets[:0]
}

func (c *Context) BindVertexBuffer(h rhi.VertexBufferHandle) {
	vb := c.store.VertexBuffers.Get(h)
	c.state.bindVertexArray(c.funcs, vb.VAO)
	c.activeVertexBuffer = h
}

// BindIndexBuffer attaches the index buffer to the bound vertex buffer.
func (c *Context) BindIndexBuffer(h rhi.IndexBufferHandle) {
	ib := c.store.IndexBuffers.Get(h)
	c.state.bindElementBuffer(c.funcs, ib.ID)
	c.activeIndexBuffer = h
}

func (c *Context) DrawIndexed(vb rhi.VertexBufferHandle, ib rhi.IndexBufferHandle, primitive rhi.Primitive, count uint32, startIndex uint32) {
	c.BindVertexBuffer(vb)
	c.BindIndexBuffer(ib)
	indices := c.store.IndexBuffers.Get(ib)
	if startIndex >= indices.Count {
		core.LogError("draw of %s starts at index %d past its %d indices", ib, startIndex, indices.Count)
		return
	}
	if count == 0 {
		count = indices.Count - startIndex
	}
	if count > indices.Count-startIndex {
		core.Assert(false, "draw of %d indices from %d overruns %s (%d indices)", count, startIndex, ib, indices.Count)
		core.LogError("draw of %d indices from %d overruns %s (%d indices)", count, startIndex, ib, indices.Count)
		return
	}
	c.funcs.DrawElements(translatePrimitive(primitive), int32(count), indices.ElementType, uintptr(startIndex*indices.ElementSize))
	checkGLError(c.funcs, "draw indexed")
}

func (c *Context) Draw(vb rhi.VertexBufferHandle, primitive rhi.Primitive, first uint32, count uint32) {
	c.BindVertexBuffer(vb)
	vertices := c.store.VertexBuffers.Get(vb)
	if count == 0 && first < vertices.VertexCount {
		count = vertices.VertexCount - first
	}
	if count == 0 {
		return
	}
	c.funcs.DrawArrays(translatePrimitive(primitive), int32(first), int32(count))
	checkGLError(c.funcs, "draw")
}

// uploadTexture replaces the base level of target and regenerates the mip
// chain. The unit's previous binding is restored afterwards, so uploads are
// safe in the middle of a pass.
func (c *Context) uploadTexture(t *GlTexture, target Enum, data []byte) bool {
	want := int(t.Width) * int(t.Height) * t.PixelFormat.BytesPerPixel()
	if len(data) < want {
		core.LogError("texture %s: upload of %d bytes, want %d", t.Label, len(data), want)
		return false
	}
	c.state.withTexture(c.funcs, t.Target, t.ID, func() {
		c.funcs.TexSubImage2D(target, 0, 0, 0, t.Width, t.Height, t.Format, t.Type, data[:want])
		if t.NumMips > 0 {
			c.funcs.GenerateMipmap(t.Target)
		}
	})
	return true
}

func (c *Context) UploadTextureData(h rhi.Texture2DHandle, data []byte) {
	t := c.store.Textures2D.Get(h)
	if c.uploadTexture(t, TEXTURE_2D, data) {
		checkGLError(c.funcs, "upload texture")
	}
}

func (c *Context) UploadTextureCubeData(h rhi.TextureCubeHandle, side rhi.CubeSide, data []byte) {
	core.Assert(side >= 0 && side < rhi.CubeSideCount, "invalid cube side %d", side)
	t := c.store.TexturesCube.Get(h)
	if c.uploadTexture(t, TEXTURE_CUBE_MAP_POSITIVE_X+Enum(side), data) {
		checkGLError(c.funcs, "upload cube texture")
	}
}

func (c *Context) BindRenderTarget(h rhi.RenderTargetHandle) {
	fb := c.store.RenderTargets.Get(h)
	c.state.bindFramebuffer(c.funcs, fb.ID)
	c.activeRenderTarget = h
}

func (c *Context) BindDefaultRenderTarget() {
	c.state.bindFramebuffer(c.funcs, 0)
	c.activeRenderTarget.Invalidate()
}

// withFramebuffer runs fn with fb bound and restores the previous binding.
func (c *Context) withFramebuffer(fb uint32, fn func()) {
	previous := c.state.drawFBO
	c.state.bindFramebuffer(c.funcs, fb)
	fn()
	c.state.bindFramebuffer(c.funcs, previous)
}

func (c *Context) ClearRenderTargetColor(h rhi.RenderTargetHandle, attachment int, color rhi.ClearColor) {
	core.Assert(attachment >= 0 && attachment < rhi.MaxColorAttachments, "color attachment %d out of range", attachment)
	fb := c.store.RenderTargets.Get(h)
	c.withFramebuffer(fb.ID, func() {
		c.funcs.ClearBufferfv(COLOR, int32(attachment), []float32{color.R, color.G, color.B, color.A})
	})
}

func (c *Context) ClearRenderTargetDepth(h rhi.RenderTargetHandle, depth float32) {
	fb := c.store.RenderTargets.Get(h)
	c.withFramebuffer(fb.ID, func() {
		mask := c.state.depthMask
		c.state.setDepthMask(c.funcs, true)
		c.funcs.ClearBufferfv(DEPTH, 0, []float32{depth})
		c.state.setDepthMask(c.funcs, mask)
	})
}

func (c *Context) Clear(color rhi.ClearColor, depth float32) {
	mask := c.state.depthMask
	c.state.setDepthMask(c.funcs, true)
	c.funcs.ClearColor(color.R, color.G, color.B, color.A)
	c.funcs.ClearDepthf(depth)
	c.funcs.Clear(COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT)
	c.state.setDepthMask(c.funcs, mask)
}

func (c *Context) BindConstantBufferToLocation(h rhi.ConstantBufferHandle, location uint32) {
	cb := c.store.ConstantBuffers.Get(h)
	c.funcs.BindBufferBase(UNIFORM_BUFFER, location, cb.ID)
	// BindBufferBase also binds the generic target
	c.state.uniformBuffer = cb.ID
}

func (c *Context) UpdateConstantBuffer(h rhi.ConstantBufferHandle, offset uint32, data []byte) {
	cb := c.store.ConstantBuffers.Get(h)
	if uint64(offset)+uint64(len(data)) > uint64(cb.Size) {
		core.LogError("constant buffer %s: write of %d bytes at %d overruns %d bytes", cb.Label, len(data), offset, cb.Size)
		return
	}
	c.state.bindBuffer(c.funcs, UNIFORM_BUFFER, cb.ID)
	c.funcs.BufferSubData(UNIFORM_BUFFER, int(offset), data)
}

func (c *Context) BindUniformBlock(block rhi.UniformHandle, location uint32) {
	u := c.store.Uniforms.Get(block)
	info, p, ok := c.resolve(u)
	if !ok {
		return
	}
	if !info.block || u.Type != rhi.UniformBlock {
		core.LogError("uniform %q is not a uniform block", u.Name)
		return
	}
	c.funcs.UniformBlockBinding(p.ID, info.blockIndex, location)
}

func (c *Context) SetViewport(v rhi.Viewport) {
	c.funcs.Viewport(v.X, v.Y, v.Width, v.Height)
}

func (c *Context) SetBlendState(s rhi.BlendState) {
	if !s.Enabled {
		c.funcs.Disable(BLEND)
		return
	}
	c.funcs.Enable(BLEND)
	c.funcs.BlendFuncSeparate(
		translateBlendFactor(s.SrcColor), translateBlendFactor(s.DstColor),
		translateBlendFactor(s.SrcAlpha), translateBlendFactor(s.DstAlpha),
	)
	c.funcs.BlendEquationSeparate(translateBlendOp(s.ColorOp), translateBlendOp(s.AlphaOp))
}

func (c *Context) SetDepthState(s rhi.DepthState) {
	if s.TestEnabled {
		c.funcs.Enable(DEPTH_TEST)
		c.funcs.DepthFunc(translateCompareFunc(s.Func))
	} else {
		c.funcs.Disable(DEPTH_TEST)
	}
	c.state.setDepthMask(c.funcs, s.WriteEnabled)
}

func (c *Context) SetCullMode(m rhi.CullMode) {
	if m == rhi.CullModeNone {
		c.funcs.Disable(CULL_FACE)
		return
	}
	c.funcs.Enable(CULL_FACE)
	c.funcs.CullFace(translateCullMode(m))
}

// EndPass resets the texture unit counter. Bindings stay in place.
func (c *Context) EndPass() {
	c.activeTextures = 0
	c.unitTargets = c.unitTargets[:0]
}
