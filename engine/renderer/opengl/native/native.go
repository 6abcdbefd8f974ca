// Package native implements opengl.Functions with go-gl on OpenGL 4.5 core.
package native

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/spaghettifunk/phoenix/engine/renderer/opengl"
)

// Functions forwards to the go-gl entry points loaded by Init.
type Functions struct{}

var _ opengl.Functions = Functions{}

// Init loads the GL entry points. A context must be current on the calling
// thread.
func Init() (Functions, error) {
	if err := gl.Init(); err != nil {
		return Functions{}, err
	}
	return Functions{}, nil
}

// Version is the GL_VERSION string of the current context.
func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func ptr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func (Functions) GetError() opengl.Enum {
	return opengl.Enum(gl.GetError())
}

func (Functions) GetInteger(pname opengl.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (Functions) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (Functions) DeleteBuffer(b uint32) {
	gl.DeleteBuffers(1, &b)
}

func (Functions) BindBuffer(target opengl.Enum, b uint32) {
	gl.BindBuffer(uint32(target), b)
}

func (Functions) BindBufferBase(target opengl.Enum, index uint32, b uint32) {
	gl.BindBufferBase(uint32(target), index, b)
}

func (Functions) BufferData(target opengl.Enum, size int, data []byte, usage opengl.Enum) {
	gl.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (Functions) BufferSubData(target opengl.Enum, offset int, data []byte) {
	gl.BufferSubData(uint32(target), offset, len(data), ptr(data))
}

func (Functions) CreateVertexArray() uint32 {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return a
}

func (Functions) DeleteVertexArray(a uint32) {
	gl.DeleteVertexArrays(1, &a)
}

func (Functions) BindVertexArray(a uint32) {
	gl.BindVertexArray(a)
}

func (Functions) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (Functions) VertexAttribPointer(index uint32, size int32, typ opengl.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, offset)
}

func (Functions) VertexAttribIPointer(index uint32, size int32, typ opengl.Enum, stride int32, offset uintptr) {
	gl.VertexAttribIPointerWithOffset(index, size, uint32(typ), stride, offset)
}

func (Functions) CreateShader(typ opengl.Enum) uint32 {
	return gl.CreateShader(uint32(typ))
}

func (Functions) ShaderSource(s uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(s, 1, csources, nil)
}

func (Functions) CompileShader(s uint32) {
	gl.CompileShader(s)
}

func (Functions) GetShaderi(s uint32, pname opengl.Enum) int {
	var v int32
	gl.GetShaderiv(s, uint32(pname), &v)
	return int(v)
}

func (Functions) GetShaderInfoLog(s uint32) string {
	var n int32
	gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(s, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Functions) DeleteShader(s uint32) {
	gl.DeleteShader(s)
}

func (Functions) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (Functions) AttachShader(p, s uint32) {
	gl.AttachShader(p, s)
}

func (Functions) DetachShader(p, s uint32) {
	gl.DetachShader(p, s)
}

func (Functions) LinkProgram(p uint32) {
	gl.LinkProgram(p)
}

func (Functions) GetProgrami(p uint32, pname opengl.Enum) int {
	var v int32
	gl.GetProgramiv(p, uint32(pname), &v)
	return int(v)
}

func (Functions) GetProgramInfoLog(p uint32) string {
	var n int32
	gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(p, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Functions) DeleteProgram(p uint32) {
	gl.DeleteProgram(p)
}

func (Functions) UseProgram(p uint32) {
	gl.UseProgram(p)
}

func (Functions) GetActiveUniform(p uint32, index uint32) (string, int32, opengl.Enum) {
	var maxLen int32
	gl.GetProgramiv(p, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	buf := make([]uint8, maxLen+1)
	var length, size int32
	var typ uint32
	gl.GetActiveUniform(p, index, maxLen+1, &length, &size, &typ, &buf[0])
	return string(buf[:length]), size, opengl.Enum(typ)
}

func (Functions) GetUniformLocation(p uint32, name string) int32 {
	return gl.GetUniformLocation(p, gl.Str(name+"\x00"))
}

func (Functions) GetActiveUniformBlockName(p uint32, index uint32) string {
	var maxLen int32
	gl.GetProgramiv(p, gl.ACTIVE_UNIFORM_BLOCK_MAX_NAME_LENGTH, &maxLen)
	buf := make([]uint8, maxLen+1)
	var length int32
	gl.GetActiveUniformBlockName(p, index, maxLen+1, &length, &buf[0])
	return string(buf[:length])
}

func (Functions) GetActiveUniformBlocki(p uint32, index uint32, pname opengl.Enum) int {
	var v int32
	gl.GetActiveUniformBlockiv(p, index, uint32(pname), &v)
	return int(v)
}

func (Functions) UniformBlockBinding(p uint32, blockIndex uint32, binding uint32) {
	gl.UniformBlockBinding(p, blockIndex, binding)
}

func (Functions) Uniform1fv(location int32, v []float32) {
	gl.Uniform1fv(location, int32(len(v)), &v[0])
}

func (Functions) Uniform2fv(location int32, v []float32) {
	gl.Uniform2fv(location, int32(len(v)/2), &v[0])
}

func (Functions) Uniform3fv(location int32, v []float32) {
	gl.Uniform3fv(location, int32(len(v)/3), &v[0])
}

func (Functions) Uniform4fv(location int32, v []float32) {
	gl.Uniform4fv(location, int32(len(v)/4), &v[0])
}

func (Functions) Uniform1iv(location int32, v []int32) {
	gl.Uniform1iv(location, int32(len(v)), &v[0])
}

func (Functions) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (Functions) UniformMatrix3fv(location int32, v []float32) {
	gl.UniformMatrix3fv(location, int32(len(v)/9), false, &v[0])
}

func (Functions) UniformMatrix4fv(location int32, v []float32) {
	gl.UniformMatrix4fv(location, int32(len(v)/16), false, &v[0])
}

func (Functions) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (Functions) DeleteTexture(t uint32) {
	gl.DeleteTextures(1, &t)
}

func (Functions) ActiveTexture(unit opengl.Enum) {
	gl.ActiveTexture(uint32(unit))
}

func (Functions) BindTexture(target opengl.Enum, t uint32) {
	gl.BindTexture(uint32(target), t)
}

func (Functions) TexStorage2D(target opengl.Enum, levels int32, internalFormat opengl.Enum, width, height int32) {
	gl.TexStorage2D(uint32(target), levels, uint32(internalFormat), width, height)
}

func (Functions) TexSubImage2D(target opengl.Enum, level int32, x, y, width, height int32, format, typ opengl.Enum, data []byte) {
	gl.TexSubImage2D(uint32(target), level, x, y, width, height, uint32(format), uint32(typ), ptr(data))
}

func (Functions) TexParameteri(target, pname opengl.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (Functions) GenerateMipmap(target opengl.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (Functions) CreateFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (Functions) DeleteFramebuffer(fb uint32) {
	gl.DeleteFramebuffers(1, &fb)
}

func (Functions) BindFramebuffer(target opengl.Enum, fb uint32) {
	gl.BindFramebuffer(uint32(target), fb)
}

func (Functions) FramebufferTexture2D(target, attachment, texTarget opengl.Enum, t uint32, level int32) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), t, level)
}

func (Functions) DrawBuffers(bufs []opengl.Enum) {
	if len(bufs) == 0 {
		return
	}
	raw := make([]uint32, len(bufs))
	for i, b := range bufs {
		raw[i] = uint32(b)
	}
	gl.DrawBuffers(int32(len(raw)), &raw[0])
}

func (Functions) CheckFramebufferStatus(target opengl.Enum) opengl.Enum {
	return opengl.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (Functions) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (Functions) ClearDepthf(d float32) {
	gl.ClearDepthf(d)
}

func (Functions) Clear(mask opengl.Enum) {
	gl.Clear(uint32(mask))
}

func (Functions) ClearBufferfv(buffer opengl.Enum, drawBuffer int32, value []float32) {
	gl.ClearBufferfv(uint32(buffer), drawBuffer, &value[0])
}

func (Functions) DrawArrays(mode opengl.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (Functions) DrawElements(mode opengl.Enum, count int32, typ opengl.Enum, offset uintptr) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), offset)
}

func (Functions) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (Functions) Enable(cap opengl.Enum) {
	gl.Enable(uint32(cap))
}

func (Functions) Disable(cap opengl.Enum) {
	gl.Disable(uint32(cap))
}

func (Functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha opengl.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (Functions) BlendEquationSeparate(modeRGB, modeAlpha opengl.Enum) {
	gl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (Functions) DepthFunc(f opengl.Enum) {
	gl.DepthFunc(uint32(f))
}

func (Functions) DepthMask(mask bool) {
	gl.DepthMask(mask)
}

func (Functions) CullFace(mode opengl.Enum) {
	gl.CullFace(uint32(mode))
}

func (Functions) ObjectLabel(identifier opengl.Enum, name uint32, label string) {
	gl.ObjectLabel(uint32(identifier), name, int32(len(label)), gl.Str(label+"\x00"))
}
