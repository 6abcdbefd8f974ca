package opengl

import (
	"math/bits"
	"strings"

	"github.com/google/uuid"

	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

// Device creates GPU objects on the current GL context.
type Device struct {
	funcs Functions
	store *ResourceStore
	state *glState
}

var _ rhi.Device = (*Device)(nil)

// objectLabel returns label, or a generated one when it is empty.
func objectLabel(label, kind string) string {
	if label != "" {
		return label
	}
	return kind + "-" + uuid.NewString()
}

func (d *Device) CreateVertexBuffer(format *rhi.VertexBufferFormat) rhi.VertexBufferHandle {
	if format == nil || format.Size() == 0 {
		core.LogError("vertex buffer needs at least one attribute")
		return rhi.VertexBufferHandle{}
	}
	for i := 0; i < format.Size(); i++ {
		attr := format.Attribute(i)
		if attr.Decl.Kind >= rhi.AttributeKindCount {
			core.LogError("vertex attribute kind %d has no shader location", attr.Decl.Kind)
			return rhi.VertexBufferHandle{}
		}
		if attr.Decl.Components < 1 || attr.Decl.Components > 4 {
			core.LogError("vertex attribute %s: %d components, want 1 to 4", attr.Decl.Kind, attr.Decl.Components)
			return rhi.VertexBufferHandle{}
		}
		if len(attr.Data.Data) == 0 || attr.Data.Size() > len(attr.Data.Data) {
			core.LogError("vertex attribute %s: %d bytes of data, want %d", attr.Decl.Kind, len(attr.Data.Data), attr.Data.Size())
			return rhi.VertexBufferHandle{}
		}
	}

	h := d.store.VertexBuffers.Allocate()
	if !h.IsValid() {
		return h
	}
	vb := d.store.VertexBuffers.Get(h)
	vb.VAO = d.funcs.CreateVertexArray()
	vb.VertexCount = format.VertexCount()
	d.state.bindVertexArray(d.funcs, vb.VAO)
	for i := 0; i < format.Size(); i++ {
		attr := format.Attribute(i)
		buf := d.funcs.CreateBuffer()
		vb.Buffers[vb.NumBuffers] = buf
		vb.NumBuffers++

		d.state.bindBuffer(d.funcs, ARRAY_BUFFER, buf)
		d.funcs.BufferData(ARRAY_BUFFER, len(attr.Data.Data), attr.Data.Data, STATIC_DRAW)
		location := uint32(attr.Decl.Kind)
		d.funcs.EnableVertexAttribArray(location)
		typ := translateElementType(attr.Decl.Type)
		if attr.Decl.Type == rhi.ElementFloat32 || attr.Decl.Normalized {
			d.funcs.VertexAttribPointer(location, int32(attr.Decl.Components), typ, attr.Decl.Normalized, int32(attr.Data.Stride), 0)
		} else {
			d.funcs.VertexAttribIPointer(location, int32(attr.Decl.Components), typ, int32(attr.Data.Stride), 0)
		}
	}
	d.state.bindVertexArray(d.funcs, 0)

	if err := glErr(d.funcs); err != nil {
		core.LogError("failed to create vertex buffer: %s", err.Error())
		d.releaseVertexBuffer(vb)
		d.store.VertexBuffers.Destroy(h)
		return rhi.VertexBufferHandle{}
	}
	vb.Label = objectLabel("", "VertexBuffer")
	d.funcs.ObjectLabel(VERTEX_ARRAY, vb.VAO, vb.Label)
	return h
}

func (d *Device) CreateIndexBuffer(elementSize uint32, count uint32, data []byte) rhi.IndexBufferHandle {
	typ, ok := indexType(elementSize)
	if !ok {
		core.LogError("index element size must be 1, 2 or 4 bytes, got %d", elementSize)
		return rhi.IndexBufferHandle{}
	}
	size := int(elementSize) * int(count)
	if count == 0 || len(data) < size {
		core.LogError("index buffer: %d indices of %d bytes need %d bytes, got %d", count, elementSize, size, len(data))
		return rhi.IndexBufferHandle{}
	}

	h := d.store.IndexBuffers.Allocate()
	if !h.IsValid() {
		return h
	}
	ib := d.store.IndexBuffers.Get(h)
	ib.ID = d.funcs.CreateBuffer()
	ib.ElementType = typ
	ib.ElementSize = elementSize
	ib.Count = count
	// element buffer bindings live in the vertex array, upload through the array target
	d.state.bindBuffer(d.funcs, ARRAY_BUFFER, ib.ID)
	d.funcs.BufferData(ARRAY_BUFFER, size, data[:size], STATIC_DRAW)
	d.state.bindBuffer(d.funcs, ARRAY_BUFFER, 0)

	if err := glErr(d.funcs); err != nil {
		core.LogError("failed to create index buffer: %s", err.Error())
		d.state.deleteBuffer(d.funcs, ib.ID)
		d.store.IndexBuffers.Destroy(h)
		return rhi.IndexBufferHandle{}
	}
	ib.Label = objectLabel("", "IndexBuffer")
	d.funcs.ObjectLabel(BUFFER, ib.ID, ib.Label)
	return h
}

func (d *Device) CreateVertexShader(source string) rhi.ShaderHandle {
	return d.createShader(VERTEX_SHADER, source)
}

func (d *Device) CreateFragmentShader(source string) rhi.ShaderHandle {
	return d.createShader(FRAGMENT_SHADER, source)
}

func stageName(stage Enum) string {
	if stage == VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}

func (d *Device) createShader(stage Enum, source string) rhi.ShaderHandle {
	if strings.TrimSpace(source) == "" {
		core.LogError("empty %s shader source", stageName(stage))
		return rhi.ShaderHandle{}
	}
	h := d.store.Shaders.Allocate()
	if !h.IsValid() {
		return h
	}
	sh := d.store.Shaders.Get(h)
	sh.Stage = stage
	sh.ID = d.funcs.CreateShader(stage)
	d.funcs.ShaderSource(sh.ID, source)
	d.funcs.CompileShader(sh.ID)
	if d.funcs.GetShaderi(sh.ID, COMPILE_STATUS) == FALSE {
		core.LogError("failed to compile %s shader: %s", stageName(stage), strings.TrimSpace(d.funcs.GetShaderInfoLog(sh.ID)))
		d.funcs.DeleteShader(sh.ID)
		d.store.Shaders.Destroy(h)
		return rhi.ShaderHandle{}
	}
	sh.Label = objectLabel("", "Shader")
	d.funcs.ObjectLabel(SHADER, sh.ID, sh.Label)
	return h
}

func (d *Device) CreateProgram(vs, fs rhi.ShaderHandle) rhi.ProgramHandle {
	vsh, ok := d.store.Shaders.Lookup(vs)
	if !ok || vsh.Stage != VERTEX_SHADER {
		core.LogError("program needs a live vertex shader, got %s", vs)
		return rhi.ProgramHandle{}
	}
	fsh, ok := d.store.Shaders.Lookup(fs)
	if !ok || fsh.Stage != FRAGMENT_SHADER {
		core.LogError("program needs a live fragment shader, got %s", fs)
		return rhi.ProgramHandle{}
	}

	h := d.store.Programs.Allocate()
	if !h.IsValid() {
		return h
	}
	p := d.store.Programs.Get(h)
	p.ID = d.funcs.CreateProgram()
	d.funcs.AttachShader(p.ID, vsh.ID)
	d.funcs.AttachShader(p.ID, fsh.ID)
	d.funcs.LinkProgram(p.ID)
	d.funcs.DetachShader(p.ID, vsh.ID)
	d.funcs.DetachShader(p.ID, fsh.ID)
	if d.funcs.GetProgrami(p.ID, LINK_STATUS) == FALSE {
		core.LogError("failed to link program: %s", strings.TrimSpace(d.funcs.GetProgramInfoLog(p.ID)))
		d.state.deleteProgram(d.funcs, p.ID)
		d.store.Programs.Destroy(h)
		return rhi.ProgramHandle{}
	}
	d.registerActiveUniforms(p)
	p.Label = objectLabel("", "Program")
	d.funcs.ObjectLabel(PROGRAM, p.ID, p.Label)
	checkGLError(d.funcs, "create program")
	return h
}

// registerActiveUniforms records every active uniform and uniform block of a
// linked program in the uniform cache.
func (d *Device) registerActiveUniforms(p *GlProgram) {
	n := d.funcs.GetProgrami(p.ID, ACTIVE_UNIFORMS)
	for i := 0; i < n; i++ {
		name, size, typ := d.funcs.GetActiveUniform(p.ID, uint32(i))
		// arrays are reported as "name[0]"
		name = strings.TrimSuffix(name, "[0]")
		location := d.funcs.GetUniformLocation(p.ID, name)
		if location < 0 {
			// members of uniform blocks have no location
			continue
		}
		key := d.store.existing.register(activeUniform{
			name:     name,
			program:  p.ID,
			location: location,
			size:     size,
			typ:      typ,
		})
		p.UniformKeys = append(p.UniformKeys, key)
	}

	blocks := d.funcs.GetProgrami(p.ID, ACTIVE_UNIFORM_BLOCKS)
	for i := 0; i < blocks; i++ {
		name := d.funcs.GetActiveUniformBlockName(p.ID, uint32(i))
		key := d.store.existing.register(activeUniform{
			name:       name,
			program:    p.ID,
			location:   -1,
			block:      true,
			blockIndex: uint32(i),
			blockSize:  int32(d.funcs.GetActiveUniformBlocki(p.ID, uint32(i), UNIFORM_BLOCK_DATA_SIZE)),
		})
		p.UniformKeys = append(p.UniformKeys, key)
	}
	core.LogDebug("program %d: %d active uniforms, %d uniform blocks", p.ID, n, blocks)
}

// maxLevels is the length of a full mip chain for a texture of the given size.
func maxLevels(width, height uint32) uint32 {
	return uint32(bits.Len32(max(width, height)))
}

func (d *Device) createTexture(target Enum, desc rhi.TextureDesc) (GlTexture, bool) {
	if desc.Width == 0 || desc.Height == 0 {
		core.LogError("texture %q: zero size %dx%d", desc.Label, desc.Width, desc.Height)
		return GlTexture{}, false
	}
	if target == TEXTURE_CUBE_MAP && desc.Width != desc.Height {
		core.LogError("cube texture %q: faces must be square, got %dx%d", desc.Label, desc.Width, desc.Height)
		return GlTexture{}, false
	}
	triple, ok := translatePixelFormat(desc.Format)
	if !ok {
		core.LogError("texture %q: unsupported pixel format %d", desc.Label, desc.Format)
		return GlTexture{}, false
	}
	if levels := desc.Levels(); levels > maxLevels(desc.Width, desc.Height) {
		core.LogError("texture %q: %d levels requested, %dx%d allows %d", desc.Label, levels, desc.Width, desc.Height, maxLevels(desc.Width, desc.Height))
		return GlTexture{}, false
	}

	t := GlTexture{
		ID:             d.funcs.CreateTexture(),
		Target:         target,
		InternalFormat: triple.internalFormat,
		Format:         triple.format,
		Type:           triple.typ,
		PixelFormat:    desc.Format,
		Width:          int32(desc.Width),
		Height:         int32(desc.Height),
		NumMips:        desc.NumMips,
	}
	d.state.withTexture(d.funcs, target, t.ID, func() {
		d.funcs.TexStorage2D(target, int32(desc.Levels()), t.InternalFormat, t.Width, t.Height)
		d.funcs.TexParameteri(target, TEXTURE_MIN_FILTER, int32(translateFilter(desc.MinFilter)))
		d.funcs.TexParameteri(target, TEXTURE_MAG_FILTER, int32(translateFilter(desc.MagFilter)))
		d.funcs.TexParameteri(target, TEXTURE_WRAP_S, int32(translateWrap(desc.WrapS)))
		d.funcs.TexParameteri(target, TEXTURE_WRAP_T, int32(translateWrap(desc.WrapT)))
		if target == TEXTURE_CUBE_MAP {
			d.funcs.TexParameteri(target, TEXTURE_WRAP_R, int32(translateWrap(desc.WrapR)))
		}
	})

	if err := glErr(d.funcs); err != nil {
		core.LogError("failed to create texture %q: %s", desc.Label, err.Error())
		d.state.deleteTexture(d.funcs, t.ID)
		return GlTexture{}, false
	}
	t.Label = objectLabel(desc.Label, "Texture")
	d.funcs.ObjectLabel(TEXTURE, t.ID, t.Label)
	return t, true
}

func (d *Device) CreateTexture2D(desc rhi.TextureDesc) rhi.Texture2DHandle {
	h := d.store.Textures2D.Allocate()
	if !h.IsValid() {
		return h
	}
	t, ok := d.createTexture(TEXTURE_2D, desc)
	if !ok {
		d.store.Textures2D.Destroy(h)
		return rhi.Texture2DHandle{}
	}
	*d.store.Textures2D.Get(h) = t
	return h
}

func (d *Device) CreateTextureCube(desc rhi.TextureDesc) rhi.TextureCubeHandle {
	h := d.store.TexturesCube.Allocate()
	if !h.IsValid() {
		return h
	}
	t, ok := d.createTexture(TEXTURE_CUBE_MAP, desc)
	if !ok {
		d.store.TexturesCube.Destroy(h)
		return rhi.TextureCubeHandle{}
	}
	*d.store.TexturesCube.Get(h) = t
	return h
}

func (d *Device) CreateRenderTarget(desc rhi.RenderTargetDesc) rhi.RenderTargetHandle {
	if desc.ColorAttachmentCount() == 0 {
		core.LogError("render target %q has no color attachment", desc.Label)
		return rhi.RenderTargetHandle{}
	}
	attachment := func(h rhi.Texture2DHandle) (*GlTexture, bool) {
		t, ok := d.store.Textures2D.Lookup(h)
		if !ok {
			core.LogError("render target %q: attachment %s is not a live texture", desc.Label, h)
		}
		return t, ok
	}

	h := d.store.RenderTargets.Allocate()
	if !h.IsValid() {
		return h
	}
	fb := d.store.RenderTargets.Get(h)
	fb.ID = d.funcs.CreateFramebuffer()
	previous := d.state.drawFBO
	d.state.bindFramebuffer(d.funcs, fb.ID)

	fail := func() rhi.RenderTargetHandle {
		d.state.bindFramebuffer(d.funcs, previous)
		d.state.deleteFramebuffer(d.funcs, fb.ID)
		d.store.RenderTargets.Destroy(h)
		return rhi.RenderTargetHandle{}
	}

	var drawBuffers []Enum
	for i, ch := range desc.ColorAttachments {
		if !ch.IsValid() {
			continue
		}
		t, ok := attachment(ch)
		if !ok {
			return fail()
		}
		for len(drawBuffers) < i {
			drawBuffers = append(drawBuffers, 0)
		}
		point := COLOR_ATTACHMENT0 + Enum(i)
		d.funcs.FramebufferTexture2D(FRAMEBUFFER, point, TEXTURE_2D, t.ID, 0)
		drawBuffers = append(drawBuffers, point)
		fb.ColorAttachments++
	}
	others := []struct {
		handle rhi.Texture2DHandle
		point  Enum
	}{
		{desc.Depth, DEPTH_ATTACHMENT},
		{desc.Stencil, STENCIL_ATTACHMENT},
		{desc.DepthStencil, DEPTH_STENCIL_ATTACHMENT},
	}
	for _, o := range others {
		if !o.handle.IsValid() {
			continue
		}
		t, ok := attachment(o.handle)
		if !ok {
			return fail()
		}
		d.funcs.FramebufferTexture2D(FRAMEBUFFER, o.point, TEXTURE_2D, t.ID, 0)
	}
	d.funcs.DrawBuffers(drawBuffers)

	if st := d.funcs.CheckFramebufferStatus(FRAMEBUFFER); st != FRAMEBUFFER_COMPLETE {
		core.LogError("render target %q is incomplete: status %#x", desc.Label, uint32(st))
		return fail()
	}
	d.state.bindFramebuffer(d.funcs, previous)
	fb.Label = objectLabel(desc.Label, "RenderTarget")
	d.funcs.ObjectLabel(FRAMEBUFFER, fb.ID, fb.Label)
	checkGLError(d.funcs, "create render target")
	return h
}

func (d *Device) CreateUniform(name string, typ rhi.UniformType) rhi.UniformHandle {
	if name == "" {
		core.LogError("uniform needs a name")
		return rhi.UniformHandle{}
	}
	h := d.store.Uniforms.Allocate()
	if !h.IsValid() {
		return h
	}
	*d.store.Uniforms.Get(h) = RIUniform{Name: name, Hash: core.HashString(name), Type: typ}
	return h
}

func (d *Device) CreateConstantBuffer(size uint32, data []byte) rhi.ConstantBufferHandle {
	if size == 0 || len(data) > int(size) {
		core.LogError("constant buffer of %d bytes can't hold %d bytes of initial data", size, len(data))
		return rhi.ConstantBufferHandle{}
	}
	h := d.store.ConstantBuffers.Allocate()
	if !h.IsValid() {
		return h
	}
	cb := d.store.ConstantBuffers.Get(h)
	cb.ID = d.funcs.CreateBuffer()
	cb.Size = size
	var initial []byte
	if data != nil {
		initial = make([]byte, size)
		copy(initial, data)
	}
	d.state.bindBuffer(d.funcs, UNIFORM_BUFFER, cb.ID)
	d.funcs.BufferData(UNIFORM_BUFFER, int(size), initial, DYNAMIC_DRAW)

	if err := glErr(d.funcs); err != nil {
		core.LogError("failed to create constant buffer: %s", err.Error())
		d.state.deleteBuffer(d.funcs, cb.ID)
		d.store.ConstantBuffers.Destroy(h)
		return rhi.ConstantBufferHandle{}
	}
	cb.Label = objectLabel("", "ConstantBuffer")
	d.funcs.ObjectLabel(BUFFER, cb.ID, cb.Label)
	return h
}

func (d *Device) releaseVertexBuffer(vb *GlVertexBuffer) {
	for i := 0; i < vb.NumBuffers; i++ {
		d.state.deleteBuffer(d.funcs, vb.Buffers[i])
	}
	d.state.deleteVertexArray(d.funcs, vb.VAO)
}

func (d *Device) releaseProgram(p *GlProgram) {
	d.store.existing.removeProgram(p.ID, p.UniformKeys)
	d.state.deleteProgram(d.funcs, p.ID)
}

func (d *Device) DestroyVertexBuffer(h rhi.VertexBufferHandle) {
	if vb, ok := d.store.VertexBuffers.Lookup(h); ok {
		d.releaseVertexBuffer(vb)
	}
	d.store.VertexBuffers.Destroy(h)
}

func (d *Device) DestroyIndexBuffer(h rhi.IndexBufferHandle) {
	if ib, ok := d.store.IndexBuffers.Lookup(h); ok {
		d.state.deleteBuffer(d.funcs, ib.ID)
	}
	d.store.IndexBuffers.Destroy(h)
}

func (d *Device) DestroyShader(h rhi.ShaderHandle) {
	if sh, ok := d.store.Shaders.Lookup(h); ok {
		d.funcs.DeleteShader(sh.ID)
	}
	d.store.Shaders.Destroy(h)
}

func (d *Device) DestroyProgram(h rhi.ProgramHandle) {
	if p, ok := d.store.Programs.Lookup(h); ok {
		d.releaseProgram(p)
	}
	d.store.Programs.Destroy(h)
}

func (d *Device) DestroyTexture2D(h rhi.Texture2DHandle) {
	if t, ok := d.store.Textures2D.Lookup(h); ok {
		d.state.deleteTexture(d.funcs, t.ID)
	}
	d.store.Textures2D.Destroy(h)
}

func (d *Device) DestroyTextureCube(h rhi.TextureCubeHandle) {
	if t, ok := d.store.TexturesCube.Lookup(h); ok {
		d.state.deleteTexture(d.funcs, t.ID)
	}
	d.store.TexturesCube.Destroy(h)
}

func (d *Device) DestroyRenderTarget(h rhi.RenderTargetHandle) {
	if fb, ok := d.store.RenderTargets.Lookup(h); ok {
		d.state.deleteFramebuffer(d.funcs, fb.ID)
	}
	d.store.RenderTargets.Destroy(h)
}

func (d *Device) DestroyUniform(h rhi.UniformHandle) {
	d.store.Uniforms.Destroy(h)
}

func (d *Device) DestroyConstantBuffer(h rhi.ConstantBufferHandle) {
	if cb, ok := d.store.ConstantBuffers.Lookup(h); ok {
		d.state.deleteBuffer(d.funcs, cb.ID)
	}
	d.store.ConstantBuffers.Destroy(h)
}

// Shutdown destroys every live resource. Render targets go before the
// textures they reference and programs before their shaders.
func (d *Device) Shutdown() {
	s := d.store
	s.RenderTargets.Clear(func(_ rhi.RenderTargetHandle, fb *GlFramebuffer) {
		d.state.deleteFramebuffer(d.funcs, fb.ID)
	})
	s.Programs.Clear(func(_ rhi.ProgramHandle, p *GlProgram) { d.releaseProgram(p) })
	s.Shaders.Clear(func(_ rhi.ShaderHandle, sh *GlShader) { d.funcs.DeleteShader(sh.ID) })
	s.VertexBuffers.Clear(func(_ rhi.VertexBufferHandle, vb *GlVertexBuffer) { d.releaseVertexBuffer(vb) })
	s.IndexBuffers.Clear(func(_ rhi.IndexBufferHandle, ib *GlIndexBuffer) { d.state.deleteBuffer(d.funcs, ib.ID) })
	s.Textures2D.Clear(func(_ rhi.Texture2DHandle, t *GlTexture) { d.state.deleteTexture(d.funcs, t.ID) })
	s.TexturesCube.Clear(func(_ rhi.TextureCubeHandle, t *GlTexture) { d.state.deleteTexture(d.funcs, t.ID) })
	s.ConstantBuffers.Clear(func(_ rhi.ConstantBufferHandle, cb *GlConstantBuffer) { d.state.deleteBuffer(d.funcs, cb.ID) })
	s.Uniforms.Clear(nil)
	core.LogInfo("opengl device shut down")
}
