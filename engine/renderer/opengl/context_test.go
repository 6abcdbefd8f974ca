package opengl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

// uniformCalls returns every recorded call that uploads a uniform value.
func uniformCalls(f *fakeGL) []call {
	var out []call
	for _, c := range f.calls {
		if strings.HasPrefix(c.name, "Uniform") && c.name != "UniformBlockBinding" {
			out = append(out, c)
		}
	}
	return out
}

func TestBindUniformByName(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{
		{name: "mvp", size: 1, typ: FLOAT_MAT4, location: 2},
		{name: "color", size: 1, typ: FLOAT_VEC3, location: 7},
	}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	color := d.CreateUniform("color", rhi.UniformVec3)

	c.BindShaderProgram(program)
	f.reset()
	c.BindUniform(color, [3]float32{1, 0.5, 0.25})

	calls := uniformCalls(f)
	require.Len(t, calls, 1)
	assert.Equal(t, "Uniform3fv", calls[0].name)
	assert.Equal(t, []any{int32(7), []float32{1, 0.5, 0.25}}, calls[0].args)
}

func TestBindUniformUnknownNameIsSkipped(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{{name: "color", size: 1, typ: FLOAT_VEC3, location: 7}}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	missing := d.CreateUniform("tint", rhi.UniformVec3)
	log := captureLog(t)

	c.BindShaderProgram(program)
	f.reset()
	c.BindUniform(missing, [3]float32{1, 1, 1})

	assert.Empty(t, uniformCalls(f))
	assert.Contains(t, log.String(), `uniform "tint" is not active`)
}

func TestBindUniformMismatchesAreSkipped(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{
		{name: "color", size: 1, typ: FLOAT_VEC3, location: 7},
		{name: "albedo", size: 1, typ: SAMPLER_2D, location: 1},
		{name: "count", size: 1, typ: INT, location: 4},
	}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	log := captureLog(t)
	c.BindShaderProgram(program)
	f.reset()

	c.BindUniform(d.CreateUniform("color", rhi.UniformVec4), [4]float32{})
	assert.Contains(t, log.String(), "declared vec3 in the program, bound as vec4")

	c.BindUniform(d.CreateUniform("albedo", rhi.UniformSampler2D), int32(0))
	assert.Contains(t, log.String(), `uniform "albedo" is not a basic uniform`)

	c.BindUniform(d.CreateUniform("count", rhi.UniformInt), float32(1))
	assert.Contains(t, log.String(), "wants integer data")

	color := d.CreateUniform("color", rhi.UniformVec3)
	c.BindUniform(color, "red")
	assert.Contains(t, log.String(), "unsupported value of type string")

	c.BindUniform(color, []float32{1, 2})
	assert.Contains(t, log.String(), "vec3 needs 3 floats, got 2")

	assert.Empty(t, uniformCalls(f))
}

func TestBindUniformValues(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{
		{name: "lights", size: 2, typ: FLOAT_VEC4, location: 1},
		{name: "model", size: 1, typ: FLOAT_MAT4, location: 2},
		{name: "normalMatrix", size: 1, typ: FLOAT_MAT3, location: 3},
		{name: "enabled", size: 1, typ: BOOL, location: 4},
		{name: "time", size: 1, typ: FLOAT, location: 5},
		{name: "offset", size: 1, typ: FLOAT_VEC2, location: 6},
	}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	c.BindShaderProgram(program)
	f.reset()

	// the array is clamped to the size the program declares
	lights := make([]float32, 12)
	c.BindUniform(d.CreateUniform("lights", rhi.UniformVec4), lights)
	c.BindUniform(d.CreateUniform("model", rhi.UniformMat4), [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1})
	c.BindUniform(d.CreateUniform("normalMatrix", rhi.UniformMat3), [9]float32{})
	c.BindUniform(d.CreateUniform("enabled", rhi.UniformInt), true)
	c.BindUniform(d.CreateUniform("time", rhi.UniformFloat), float32(0.5))
	c.BindUniform(d.CreateUniform("offset", rhi.UniformVec2), [2]float32{3, 4})

	calls := uniformCalls(f)
	require.Len(t, calls, 6)
	assert.Equal(t, "Uniform4fv", calls[0].name)
	assert.Len(t, calls[0].args[1], 8)
	assert.Equal(t, "UniformMatrix4fv", calls[1].name)
	assert.Equal(t, int32(2), calls[1].args[0])
	assert.Equal(t, "UniformMatrix3fv", calls[2].name)
	assert.Equal(t, []any{int32(4), []int32{1}}, calls[3].args)
	assert.Equal(t, []any{int32(5), []float32{0.5}}, calls[4].args)
	assert.Equal(t, []any{int32(6), []float32{3, 4}}, calls[5].args)
}

func TestBindShaderProgramSkipsRedundantBinds(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	first := newTestProgram(t, d)
	second := d.CreateProgram(d.CreateVertexShader(testVertexSource), d.CreateFragmentShader(testFragmentSource))

	c.BindShaderProgram(first)
	c.BindShaderProgram(first)
	assert.Equal(t, 1, f.count("UseProgram"))
	c.BindShaderProgram(second)
	assert.Equal(t, 2, f.count("UseProgram"))
	assert.Equal(t, second, c.ActiveProgram())
}

func TestBindTextureAssignsConsecutiveUnits(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{
		{name: "albedo", size: 1, typ: SAMPLER_2D, location: 1},
		{name: "normals", size: 1, typ: SAMPLER_2D, location: 2},
		{name: "sky", size: 1, typ: SAMPLER_CUBE, location: 3},
	}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	desc := rhi.TextureDesc{Width: 4, Height: 4, Format: rhi.PixelFormatRGBA8}
	albedoTex := d.CreateTexture2D(desc)
	normalTex := d.CreateTexture2D(desc)
	skyTex := d.CreateTextureCube(desc)
	albedo := d.CreateUniform("albedo", rhi.UniformSampler2D)
	normals := d.CreateUniform("normals", rhi.UniformSampler2D)
	sky := d.CreateUniform("sky", rhi.UniformSamplerCube)

	c.BindShaderProgram(program)
	f.reset()
	c.BindTexture(albedo, albedoTex)
	c.BindTexture(normals, normalTex)
	c.BindTextureCube(sky, skyTex)
	assert.Equal(t, 3, c.ActiveTextures())

	units := f.named("Uniform1i")
	require.Len(t, units, 3)
	assert.Equal(t, []any{int32(1), int32(0)}, units[0].args)
	assert.Equal(t, []any{int32(2), int32(1)}, units[1].args)
	assert.Equal(t, []any{int32(3), int32(2)}, units[2].args)

	// unit 0 is already active
	active := f.named("ActiveTexture")
	require.Len(t, active, 2)
	assert.Equal(t, TEXTURE0+1, active[0].args[0])
	assert.Equal(t, TEXTURE0+2, active[1].args[0])

	binds := f.named("BindTexture")
	require.Len(t, binds, 3)
	assert.Equal(t, []any{TEXTURE_CUBE_MAP, d.store.TexturesCube.Get(skyTex).ID}, binds[2].args)

	c.EndPass()
	assert.Equal(t, 0, c.ActiveTextures())
	f.reset()
	c.BindTexture(albedo, albedoTex)
	assert.Equal(t, []any{int32(1), int32(0)}, f.named("Uniform1i")[0].args)
}

func TestBindTextureUnknownSamplerIsSkipped(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	tex := d.CreateTexture2D(rhi.TextureDesc{Width: 4, Height: 4, Format: rhi.PixelFormatRGBA8})
	sampler := d.CreateUniform("albedo", rhi.UniformSampler2D)
	log := captureLog(t)

	c.BindShaderProgram(program)
	f.reset()
	c.BindTexture(sampler, tex)

	assert.Zero(t, f.count("BindTexture"))
	assert.Zero(t, c.ActiveTextures())
	assert.Contains(t, log.String(), `uniform "albedo" is not active`)
}

func TestUnbindTextures(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{
		{name: "a", size: 1, typ: SAMPLER_2D, location: 1},
		{name: "b", size: 1, typ: SAMPLER_CUBE, location: 2},
	}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	desc := rhi.TextureDesc{Width: 4, Height: 4, Format: rhi.PixelFormatRGBA8}
	c.BindShaderProgram(program)
	c.BindTexture(d.CreateUniform("a", rhi.UniformSampler2D), d.CreateTexture2D(desc))
	c.BindTextureCube(d.CreateUniform("b", rhi.UniformSamplerCube), d.CreateTextureCube(desc))
	f.reset()

	c.UnbindTextures()
	binds := f.named("BindTexture")
	require.Len(t, binds, 2)
	assert.Equal(t, []any{TEXTURE_2D, uint32(0)}, binds[0].args)
	assert.Equal(t, []any{TEXTURE_CUBE_MAP, uint32(0)}, binds[1].args)
	assert.Equal(t, 0, c.ActiveTextures())
}

func TestTextureCreationKeepsPassBindings(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{
		{name: "albedo", size: 1, typ: SAMPLER_2D, location: 1},
		{name: "normals", size: 1, typ: SAMPLER_2D, location: 2},
	}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	desc := rhi.TextureDesc{Width: 4, Height: 4, Format: rhi.PixelFormatRGBA8}
	albedoTex := d.CreateTexture2D(desc)
	normalTex := d.CreateTexture2D(desc)

	c.BindShaderProgram(program)
	c.BindTexture(d.CreateUniform("albedo", rhi.UniformSampler2D), albedoTex)
	c.BindTexture(d.CreateUniform("normals", rhi.UniformSampler2D), normalTex)
	albedoID := d.store.Textures2D.Get(albedoTex).ID
	normalID := d.store.Textures2D.Get(normalTex).ID

	// unit 1 is active while the pass creates and fills another texture
	late := d.CreateTexture2D(rhi.TextureDesc{Width: 4, Height: 4, NumMips: 1, Format: rhi.PixelFormatRGBA8})
	require.True(t, late.IsValid())
	c.UploadTextureData(late, make([]byte, 4*4*4))

	assert.Equal(t, albedoID, f.boundTexture(TEXTURE0, TEXTURE_2D))
	assert.Equal(t, normalID, f.boundTexture(TEXTURE0+1, TEXTURE_2D))
	assert.Equal(t, 1, f.count("GenerateMipmap"))
	assert.Equal(t, 2, c.ActiveTextures())
}

func TestDestroyedTextureIsRebound(t *testing.T) {
	f := newFakeGL()
	f.uniforms = []fakeUniform{{name: "albedo", size: 1, typ: SAMPLER_2D, location: 1}}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	desc := rhi.TextureDesc{Width: 4, Height: 4, Format: rhi.PixelFormatRGBA8}
	sampler := d.CreateUniform("albedo", rhi.UniformSampler2D)
	c.BindShaderProgram(program)

	first := d.CreateTexture2D(desc)
	c.BindTexture(sampler, first)
	c.EndPass()
	d.DestroyTexture2D(first)

	// deleting the texture emptied unit 0, so this bind has to reach the driver
	second := d.CreateTexture2D(desc)
	c.BindTexture(sampler, second)
	assert.Equal(t, d.store.Textures2D.Get(second).ID, f.boundTexture(TEXTURE0, TEXTURE_2D))
}

func newTestMesh(t *testing.T, d *Device) (rhi.VertexBufferHandle, rhi.IndexBufferHandle) {
	t.Helper()
	var format rhi.VertexBufferFormat
	format.AddFloats(rhi.AttributePosition, 2, []float32{-1, -1, 1, -1, 1, 1, -1, 1})
	vb := d.CreateVertexBuffer(&format)
	ib := d.CreateIndexBuffer(2, 6, []byte{0, 0, 1, 0, 2, 0, 2, 0, 3, 0, 0, 0})
	require.True(t, vb.IsValid())
	require.True(t, ib.IsValid())
	return vb, ib
}

func TestDrawIndexedUsesStoredCount(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	vb, ib := newTestMesh(t, d)
	f.reset()

	c.DrawIndexed(vb, ib, rhi.PrimitiveTriangles, 0, 0)
	draws := f.named("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{TRIANGLES, int32(6), UNSIGNED_SHORT, uintptr(0)}, draws[0].args)

	c.DrawIndexed(vb, ib, rhi.PrimitiveTriangles, 0, 3)
	assert.Equal(t, []any{TRIANGLES, int32(3), UNSIGNED_SHORT, uintptr(6)}, f.named("DrawElements")[1].args)

	// the second draw reuses the bound buffers
	assert.Equal(t, 1, f.count("BindVertexArray"))
	assert.Equal(t, 1, len(f.named("BindBuffer")))
	assert.Equal(t, vb, c.activeVertexBuffer)
	assert.Equal(t, ib, c.activeIndexBuffer)
}

func TestDrawIndexedPastTheEndIsSkipped(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	vb, ib := newTestMesh(t, d)
	log := captureLog(t)
	f.reset()

	c.DrawIndexed(vb, ib, rhi.PrimitiveTriangles, 0, 6)
	assert.Zero(t, f.count("DrawElements"))
	assert.Contains(t, log.String(), "past its 6 indices")
}

func TestDraw(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	vb, _ := newTestMesh(t, d)
	f.reset()

	c.Draw(vb, rhi.PrimitiveTriangleFan, 0, 0)
	c.Draw(vb, rhi.PrimitiveLines, 1, 2)
	draws := f.named("DrawArrays")
	require.Len(t, draws, 2)
	assert.Equal(t, []any{TRIANGLE_FAN, int32(0), int32(4)}, draws[0].args)
	assert.Equal(t, []any{LINES, int32(1), int32(2)}, draws[1].args)
}

func TestUploadTextureData(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	log := captureLog(t)
	mipped := d.CreateTexture2D(rhi.TextureDesc{Width: 4, Height: 2, NumMips: 1, Format: rhi.PixelFormatRGBA8})
	flat := d.CreateTexture2D(rhi.TextureDesc{Width: 4, Height: 2, Format: rhi.PixelFormatR8})
	f.reset()

	c.UploadTextureData(mipped, make([]byte, 4*2*4))
	c.UploadTextureData(flat, make([]byte, 4*2))
	c.UploadTextureData(flat, make([]byte, 3))

	uploads := f.named("TexSubImage2D")
	require.Len(t, uploads, 2)
	assert.Equal(t, []any{TEXTURE_2D, int32(0), int32(4), int32(2), RGBA, UNSIGNED_BYTE, 32}, uploads[0].args)
	assert.Equal(t, []any{TEXTURE_2D, int32(0), int32(4), int32(2), RED, UNSIGNED_BYTE, 8}, uploads[1].args)
	assert.Equal(t, 1, f.count("GenerateMipmap"))
	assert.Contains(t, log.String(), "upload of 3 bytes, want 8")
}

func TestUploadTextureCubeData(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	cube := d.CreateTextureCube(rhi.TextureDesc{Width: 2, Height: 2, NumMips: 1, Format: rhi.PixelFormatRGBA8})
	f.reset()

	c.UploadTextureCubeData(cube, rhi.CubeSideNegativeY, make([]byte, 16))
	uploads := f.named("TexSubImage2D")
	require.Len(t, uploads, 1)
	assert.Equal(t, TEXTURE_CUBE_MAP_POSITIVE_X+3, uploads[0].args[0])
	assert.Equal(t, []any{TEXTURE_CUBE_MAP}, f.named("GenerateMipmap")[0].args)
}

func newTestRenderTarget(t *testing.T, d *Device) rhi.RenderTargetHandle {
	t.Helper()
	var desc rhi.RenderTargetDesc
	desc.ColorAttachments[0] = d.CreateTexture2D(rhi.TextureDesc{Width: 8, Height: 8, Format: rhi.PixelFormatRGBA8})
	desc.ColorAttachments[1] = d.CreateTexture2D(rhi.TextureDesc{Width: 8, Height: 8, Format: rhi.PixelFormatRGBA8})
	desc.Depth = d.CreateTexture2D(rhi.TextureDesc{Width: 8, Height: 8, Format: rhi.PixelFormatDepth24})
	h := d.CreateRenderTarget(desc)
	require.True(t, h.IsValid())
	return h
}

func TestClearRenderTargetKeepsDrawTarget(t *testing.T) {
	f := newFakeGL()
	d, c := newTestBackend(t, f)
	rt := newTestRenderTarget(t, d)
	fb := d.store.RenderTargets.Get(rt)
	f.reset()

	c.ClearRenderTargetColor(rt, 1, rhi.ClearColor{R: 1, A: 1})
	clears := f.named("ClearBufferfv")
	require.Len(t, clears, 1)
	assert.Equal(t, []any{COLOR, int32(1), []float32{1, 0, 0, 1}}, clears[0].args)

	binds := f.named("BindFramebuffer")
	require.Len(t, binds, 2)
	assert.Equal(t, fb.ID, binds[0].args[1])
	assert.Equal(t, uint32(0), binds[1].args[1])
	assert.False(t, c.ActiveRenderTarget().IsValid())

	c.BindRenderTarget(rt)
	f.reset()
	c.ClearRenderTargetDepth(rt, 1)
	assert.Zero(t, f.count("BindFramebuffer"))
	assert.Equal(t, []any{DEPTH, int32(0), []float32{1}}, f.named("ClearBufferfv")[0].args)
	assert.Equal(t, rt, c.ActiveRenderTarget())

	c.BindDefaultRenderTarget()
	assert.False(t, c.ActiveRenderTarget().IsValid())
}

func TestClearEnablesDepthWritesTemporarily(t *testing.T) {
	f := newFakeGL()
	_, c := newTestBackend(t, f)

	c.SetDepthState(rhi.DepthState{TestEnabled: true, WriteEnabled: false, Func: rhi.CompareLessEqual})
	f.reset()
	c.Clear(rhi.ClearColor{A: 1}, 1)

	masks := f.named("DepthMask")
	require.Len(t, masks, 2)
	assert.Equal(t, true, masks[0].args[0])
	assert.Equal(t, false, masks[1].args[0])
	assert.Equal(t, []any{COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT}, f.named("Clear")[0].args)
}

func TestConstantBuffersAndUniformBlocks(t *testing.T) {
	f := newFakeGL()
	f.blocks = []fakeBlock{{name: "Lights", size: 32}, {name: "Camera", size: 128}}
	d, c := newTestBackend(t, f)
	program := newTestProgram(t, d)
	log := captureLog(t)
	cb := d.CreateConstantBuffer(128, nil)
	camera := d.CreateUniform("Camera", rhi.UniformBlock)
	f.reset()

	c.BindShaderProgram(program)
	c.BindUniformBlock(camera, 2)
	c.BindConstantBufferToLocation(cb, 2)
	c.UpdateConstantBuffer(cb, 64, make([]byte, 64))
	c.UpdateConstantBuffer(cb, 100, make([]byte, 64))

	p := d.store.Programs.Get(program)
	assert.Equal(t, []any{p.ID, uint32(1), uint32(2)}, f.named("UniformBlockBinding")[0].args)
	cbID := d.store.ConstantBuffers.Get(cb).ID
	assert.Equal(t, []any{UNIFORM_BUFFER, uint32(2), cbID}, f.named("BindBufferBase")[0].args)

	updates := f.named("BufferSubData")
	require.Len(t, updates, 1)
	assert.Equal(t, 64, updates[0].args[1])
	assert.Contains(t, log.String(), "overruns 128 bytes")
	// the buffer is already bound to the generic target
	assert.Zero(t, f.count("BindBuffer"))

	c.BindUniformBlock(d.CreateUniform("Camera", rhi.UniformMat4), 0)
	assert.Contains(t, log.String(), `uniform "Camera" is not a uniform block`)
}

func TestPipelineState(t *testing.T) {
	f := newFakeGL()
	_, c := newTestBackend(t, f)

	c.SetBlendState(rhi.AlphaBlending())
	c.SetBlendState(rhi.BlendState{})
	c.SetCullMode(rhi.CullModeBack)
	c.SetCullMode(rhi.CullModeNone)
	c.SetViewport(rhi.Viewport{Width: 640, Height: 480})

	assert.Equal(t, []any{SRC_ALPHA, ONE_MINUS_SRC_ALPHA, ONE, ONE_MINUS_SRC_ALPHA}, f.named("BlendFuncSeparate")[0].args)
	assert.Equal(t, []any{FUNC_ADD, FUNC_ADD}, f.named("BlendEquationSeparate")[0].args)
	assert.Equal(t, []any{BLEND}, f.named("Enable")[0].args)
	assert.Equal(t, []any{BLEND}, f.named("Disable")[0].args)
	assert.Equal(t, []any{BACK}, f.named("CullFace")[0].args)
	assert.Equal(t, []any{CULL_FACE}, f.named("Disable")[1].args)
	assert.Equal(t, []any{int32(0), int32(0), int32(640), int32(480)}, f.named("Viewport")[0].args)
}
