package opengl

import (
	"bytes"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

type call struct {
	name string
	args []any
}

type fakeUniform struct {
	name     string
	size     int32
	typ      Enum
	location int32
}

type fakeBlock struct {
	name string
	size int
}

// fakeGL records every call and plays back canned driver answers.
type fakeGL struct {
	nextID uint32
	calls  []call

	errors            []Enum
	maxTextureUnits   int
	failCompile       bool
	compileLog        string
	failLink          bool
	uniforms          []fakeUniform
	blocks            []fakeBlock
	framebufferStatus Enum

	// driver-side texture bindings
	unit  Enum
	bound map[textureBinding]uint32
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		maxTextureUnits:   16,
		framebufferStatus: FRAMEBUFFER_COMPLETE,
		unit:              TEXTURE0,
		bound:             make(map[textureBinding]uint32),
	}
}

func (f *fakeGL) record(name string, args ...any) {
	f.calls = append(f.calls, call{name: name, args: args})
}

func (f *fakeGL) id() uint32 {
	f.nextID++
	return f.nextID
}

// named returns the recorded calls with the given name.
func (f *fakeGL) named(name string) []call {
	var out []call
	for _, c := range f.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGL) count(name string) int {
	return len(f.named(name))
}

func (f *fakeGL) reset() {
	f.calls = nil
}

func (f *fakeGL) GetError() Enum {
	if len(f.errors) == 0 {
		return NO_ERROR
	}
	e := f.errors[0]
	f.errors = f.errors[1:]
	return e
}

func (f *fakeGL) GetInteger(pname Enum) int {
	if pname == MAX_COMBINED_TEXTURE_IMAGE_UNITS {
		return f.maxTextureUnits
	}
	return 0
}

func (f *fakeGL) CreateBuffer() uint32  { id := f.id(); f.record("CreateBuffer", id); return id }
func (f *fakeGL) DeleteBuffer(b uint32) { f.record("DeleteBuffer", b) }
func (f *fakeGL) BindBuffer(target Enum, b uint32) {
	f.record("BindBuffer", target, b)
}
func (f *fakeGL) BindBufferBase(target Enum, index uint32, b uint32) {
	f.record("BindBufferBase", target, index, b)
}
func (f *fakeGL) BufferData(target Enum, size int, data []byte, usage Enum) {
	f.record("BufferData", target, size, slices.Clone(data), usage)
}
func (f *fakeGL) BufferSubData(target Enum, offset int, data []byte) {
	f.record("BufferSubData", target, offset, slices.Clone(data))
}

func (f *fakeGL) CreateVertexArray() uint32  { id := f.id(); f.record("CreateVertexArray", id); return id }
func (f *fakeGL) DeleteVertexArray(a uint32) { f.record("DeleteVertexArray", a) }
func (f *fakeGL) BindVertexArray(a uint32)   { f.record("BindVertexArray", a) }
func (f *fakeGL) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray", index)
}
func (f *fakeGL) VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}
func (f *fakeGL) VertexAttribIPointer(index uint32, size int32, typ Enum, stride int32, offset uintptr) {
	f.record("VertexAttribIPointer", index, size, typ, stride, offset)
}

func (f *fakeGL) CreateShader(typ Enum) uint32      { id := f.id(); f.record("CreateShader", typ, id); return id }
func (f *fakeGL) ShaderSource(s uint32, src string) { f.record("ShaderSource", s, src) }
func (f *fakeGL) CompileShader(s uint32)            { f.record("CompileShader", s) }
func (f *fakeGL) GetShaderi(s uint32, pname Enum) int {
	if pname == COMPILE_STATUS && f.failCompile {
		return FALSE
	}
	return TRUE
}
func (f *fakeGL) GetShaderInfoLog(s uint32) string { return f.compileLog }
func (f *fakeGL) DeleteShader(s uint32)            { f.record("DeleteShader", s) }

func (f *fakeGL) CreateProgram() uint32    { id := f.id(); f.record("CreateProgram", id); return id }
func (f *fakeGL) AttachShader(p, s uint32) { f.record("AttachShader", p, s) }
func (f *fakeGL) DetachShader(p, s uint32) { f.record("DetachShader", p, s) }
func (f *fakeGL) LinkProgram(p uint32)     { f.record("LinkProgram", p) }
func (f *fakeGL) GetProgrami(p uint32, pname Enum) int {
	switch pname {
	case LINK_STATUS:
		if f.failLink {
			return FALSE
		}
		return TRUE
	case ACTIVE_UNIFORMS:
		return len(f.uniforms)
	case ACTIVE_UNIFORM_BLOCKS:
		return len(f.blocks)
	}
	return 0
}
func (f *fakeGL) GetProgramInfoLog(p uint32) string { return "link failed" }
func (f *fakeGL) DeleteProgram(p uint32)            { f.record("DeleteProgram", p) }
func (f *fakeGL) UseProgram(p uint32)               { f.record("UseProgram", p) }

func (f *fakeGL) GetActiveUniform(p uint32, index uint32) (string, int32, Enum) {
	u := f.uniforms[index]
	return u.name, u.size, u.typ
}
func (f *fakeGL) GetUniformLocation(p uint32, name string) int32 {
	for _, u := range f.uniforms {
		if strings.TrimSuffix(u.name, "[0]") == name {
			return u.location
		}
	}
	return -1
}
func (f *fakeGL) GetActiveUniformBlockName(p uint32, index uint32) string {
	return f.blocks[index].name
}
func (f *fakeGL) GetActiveUniformBlocki(p uint32, index uint32, pname Enum) int {
	return f.blocks[index].size
}
func (f *fakeGL) UniformBlockBinding(p uint32, blockIndex uint32, binding uint32) {
	f.record("UniformBlockBinding", p, blockIndex, binding)
}

func (f *fakeGL) Uniform1fv(location int32, v []float32) {
	f.record("Uniform1fv", location, slices.Clone(v))
}
func (f *fakeGL) Uniform2fv(location int32, v []float32) {
	f.record("Uniform2fv", location, slices.Clone(v))
}
func (f *fakeGL) Uniform3fv(location int32, v []float32) {
	f.record("Uniform3fv", location, slices.Clone(v))
}
func (f *fakeGL) Uniform4fv(location int32, v []float32) {
	f.record("Uniform4fv", location, slices.Clone(v))
}
func (f *fakeGL) Uniform1iv(location int32, v []int32) {
	f.record("Uniform1iv", location, slices.Clone(v))
}
func (f *fakeGL) Uniform1i(location int32, v int32) { f.record("Uniform1i", location, v) }
func (f *fakeGL) UniformMatrix3fv(location int32, v []float32) {
	f.record("UniformMatrix3fv", location, slices.Clone(v))
}
func (f *fakeGL) UniformMatrix4fv(location int32, v []float32) {
	f.record("UniformMatrix4fv", location, slices.Clone(v))
}

func (f *fakeGL) CreateTexture() uint32 { id := f.id(); f.record("CreateTexture", id); return id }
func (f *fakeGL) DeleteTexture(t uint32) {
	f.record("DeleteTexture", t)
	for key, bound := range f.bound {
		if bound == t {
			delete(f.bound, key)
		}
	}
}
func (f *fakeGL) ActiveTexture(unit Enum) {
	f.record("ActiveTexture", unit)
	f.unit = unit
}
func (f *fakeGL) BindTexture(target Enum, t uint32) {
	f.record("BindTexture", target, t)
	f.bound[textureBinding{unit: f.unit, target: target}] = t
}

// boundTexture is what the driver samples on unit for target.
func (f *fakeGL) boundTexture(unit, target Enum) uint32 {
	return f.bound[textureBinding{unit: unit, target: target}]
}
func (f *fakeGL) TexStorage2D(target Enum, levels int32, internalFormat Enum, width, height int32) {
	f.record("TexStorage2D", target, levels, internalFormat, width, height)
}
func (f *fakeGL) TexSubImage2D(target Enum, level int32, x, y, width, height int32, format, typ Enum, data []byte) {
	f.record("TexSubImage2D", target, level, width, height, format, typ, len(data))
}
func (f *fakeGL) TexParameteri(target, pname Enum, param int32) {
	f.record("TexParameteri", target, pname, param)
}
func (f *fakeGL) GenerateMipmap(target Enum) { f.record("GenerateMipmap", target) }

func (f *fakeGL) CreateFramebuffer() uint32 {
	id := f.id()
	f.record("CreateFramebuffer", id)
	return id
}
func (f *fakeGL) DeleteFramebuffer(fb uint32) { f.record("DeleteFramebuffer", fb) }
func (f *fakeGL) BindFramebuffer(target Enum, fb uint32) {
	f.record("BindFramebuffer", target, fb)
}
func (f *fakeGL) FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int32) {
	f.record("FramebufferTexture2D", attachment, t)
}
func (f *fakeGL) DrawBuffers(bufs []Enum) { f.record("DrawBuffers", slices.Clone(bufs)) }
func (f *fakeGL) CheckFramebufferStatus(target Enum) Enum {
	return f.framebufferStatus
}

func (f *fakeGL) ClearColor(r, g, b, a float32) { f.record("ClearColor", r, g, b, a) }
func (f *fakeGL) ClearDepthf(d float32)         { f.record("ClearDepthf", d) }
func (f *fakeGL) Clear(mask Enum)               { f.record("Clear", mask) }
func (f *fakeGL) ClearBufferfv(buffer Enum, drawBuffer int32, value []float32) {
	f.record("ClearBufferfv", buffer, drawBuffer, slices.Clone(value))
}

func (f *fakeGL) DrawArrays(mode Enum, first, count int32) {
	f.record("DrawArrays", mode, first, count)
}
func (f *fakeGL) DrawElements(mode Enum, count int32, typ Enum, offset uintptr) {
	f.record("DrawElements", mode, count, typ, offset)
}

func (f *fakeGL) Viewport(x, y, width, height int32) { f.record("Viewport", x, y, width, height) }
func (f *fakeGL) Enable(cap Enum)                    { f.record("Enable", cap) }
func (f *fakeGL) Disable(cap Enum)                   { f.record("Disable", cap) }
func (f *fakeGL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcAlpha, dstAlpha)
}
func (f *fakeGL) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
}
func (f *fakeGL) DepthFunc(fn Enum)   { f.record("DepthFunc", fn) }
func (f *fakeGL) DepthMask(mask bool) { f.record("DepthMask", mask) }
func (f *fakeGL) CullFace(mode Enum)  { f.record("CullFace", mode) }
func (f *fakeGL) ObjectLabel(identifier Enum, name uint32, label string) {
	f.record("ObjectLabel", identifier, name, label)
}

var _ Functions = (*fakeGL)(nil)

// newTestBackend builds a device and context on a fake driver with small
// containers.
func newTestBackend(t *testing.T, f *fakeGL) (*Device, *Context) {
	t.Helper()
	limits := rhi.Limits{
		VertexBuffers:   4,
		IndexBuffers:    4,
		Shaders:         4,
		Programs:        2,
		Textures2D:      8,
		TexturesCube:    2,
		RenderTargets:   2,
		Uniforms:        8,
		ConstantBuffers: 2,
	}
	d, c, err := New(f, limits)
	require.NoError(t, err)
	return d, c
}

// captureLog redirects the engine logger into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	t.Cleanup(func() { core.SetLogOutput(os.Stderr) })
	return &buf
}
