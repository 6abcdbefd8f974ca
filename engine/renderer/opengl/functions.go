package opengl

// Enum is a GL enumerant.
type Enum uint32

const (
	NO_ERROR                          Enum = 0x0
	FALSE                                  = 0
	TRUE                                   = 1
	POINTS                            Enum = 0x0000
	LINES                             Enum = 0x0001
	LINE_STRIP                        Enum = 0x0003
	TRIANGLES                         Enum = 0x0004
	TRIANGLE_STRIP                    Enum = 0x0005
	TRIANGLE_FAN                      Enum = 0x0006
	NEVER                             Enum = 0x0200
	LESS                              Enum = 0x0201
	EQUAL                             Enum = 0x0202
	LEQUAL                            Enum = 0x0203
	GREATER                           Enum = 0x0204
	NOTEQUAL                          Enum = 0x0205
	GEQUAL                            Enum = 0x0206
	ALWAYS                            Enum = 0x0207
	ZERO                              Enum = 0x0
	ONE                               Enum = 0x1
	SRC_COLOR                         Enum = 0x0300
	ONE_MINUS_SRC_COLOR               Enum = 0x0301
	SRC_ALPHA                         Enum = 0x0302
	ONE_MINUS_SRC_ALPHA               Enum = 0x0303
	DST_ALPHA                         Enum = 0x0304
	ONE_MINUS_DST_ALPHA               Enum = 0x0305
	DST_COLOR                         Enum = 0x0306
	ONE_MINUS_DST_COLOR               Enum = 0x0307
	FRONT                             Enum = 0x0404
	BACK                              Enum = 0x0405
	FRONT_AND_BACK                    Enum = 0x0408
	CULL_FACE                         Enum = 0x0b44
	DEPTH_TEST                        Enum = 0x0b71
	BLEND                             Enum = 0x0be2
	TEXTURE_2D                        Enum = 0x0de1
	BYTE                              Enum = 0x1400
	UNSIGNED_BYTE                     Enum = 0x1401
	SHORT                             Enum = 0x1402
	UNSIGNED_SHORT                    Enum = 0x1403
	INT                               Enum = 0x1404
	UNSIGNED_INT                      Enum = 0x1405
	FLOAT                             Enum = 0x1406
	HALF_FLOAT                        Enum = 0x140b
	COLOR                             Enum = 0x1800
	DEPTH                             Enum = 0x1801
	STENCIL                           Enum = 0x1802
	STENCIL_INDEX                     Enum = 0x1901
	DEPTH_COMPONENT                   Enum = 0x1902
	RED                               Enum = 0x1903
	RGB                               Enum = 0x1907
	RGBA                              Enum = 0x1908
	NEAREST                           Enum = 0x2600
	LINEAR                            Enum = 0x2601
	NEAREST_MIPMAP_NEAREST            Enum = 0x2700
	LINEAR_MIPMAP_NEAREST             Enum = 0x2701
	NEAREST_MIPMAP_LINEAR             Enum = 0x2702
	LINEAR_MIPMAP_LINEAR              Enum = 0x2703
	TEXTURE_MAG_FILTER                Enum = 0x2800
	TEXTURE_MIN_FILTER                Enum = 0x2801
	TEXTURE_WRAP_S                    Enum = 0x2802
	TEXTURE_WRAP_T                    Enum = 0x2803
	REPEAT                            Enum = 0x2901
	CLAMP_TO_BORDER                   Enum = 0x812d
	CLAMP_TO_EDGE                     Enum = 0x812f
	TEXTURE_WRAP_R                    Enum = 0x8072
	DEPTH_COMPONENT24                 Enum = 0x81a6
	RG                                Enum = 0x8227
	R8                                Enum = 0x8229
	RG8                               Enum = 0x822b
	R16F                              Enum = 0x822d
	R32F                              Enum = 0x822e
	MIRRORED_REPEAT                   Enum = 0x8370
	TEXTURE0                          Enum = 0x84c0
	TEXTURE_CUBE_MAP                  Enum = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X       Enum = 0x8515
	DEPTH_STENCIL                     Enum = 0x84f9
	UNSIGNED_INT_24_8                 Enum = 0x84fa
	FUNC_ADD                          Enum = 0x8006
	MIN                               Enum = 0x8007
	MAX                               Enum = 0x8008
	FUNC_SUBTRACT                     Enum = 0x800a
	FUNC_REVERSE_SUBTRACT             Enum = 0x800b
	RGB8                              Enum = 0x8051
	RGBA8                             Enum = 0x8058
	RGBA32F                           Enum = 0x8814
	RGBA16F                           Enum = 0x881a
	ARRAY_BUFFER                      Enum = 0x8892
	ELEMENT_ARRAY_BUFFER              Enum = 0x8893
	STATIC_DRAW                       Enum = 0x88e4
	DYNAMIC_DRAW                      Enum = 0x88e8
	DEPTH24_STENCIL8                  Enum = 0x88f0
	UNIFORM_BUFFER                    Enum = 0x8a11
	UNIFORM_BLOCK_DATA_SIZE           Enum = 0x8a40
	ACTIVE_UNIFORM_BLOCKS             Enum = 0x8a36
	FRAGMENT_SHADER                   Enum = 0x8b30
	VERTEX_SHADER                     Enum = 0x8b31
	FLOAT_VEC2                        Enum = 0x8b50
	FLOAT_VEC3                        Enum = 0x8b51
	FLOAT_VEC4                        Enum = 0x8b52
	INT_VEC2                          Enum = 0x8b53
	INT_VEC3                          Enum = 0x8b54
	INT_VEC4                          Enum = 0x8b55
	BOOL                              Enum = 0x8b56
	FLOAT_MAT3                        Enum = 0x8b5b
	FLOAT_MAT4                        Enum = 0x8b5c
	SAMPLER_2D                        Enum = 0x8b5e
	SAMPLER_CUBE                      Enum = 0x8b60
	COMPILE_STATUS                    Enum = 0x8b81
	LINK_STATUS                       Enum = 0x8b82
	ACTIVE_UNIFORMS                   Enum = 0x8b86
	MAX_COMBINED_TEXTURE_IMAGE_UNITS  Enum = 0x8b4d
	SRGB8_ALPHA8                      Enum = 0x8c43
	DEPTH_COMPONENT32F                Enum = 0x8cac
	FRAMEBUFFER_COMPLETE              Enum = 0x8cd5
	COLOR_ATTACHMENT0                 Enum = 0x8ce0
	DEPTH_ATTACHMENT                  Enum = 0x8d00
	STENCIL_ATTACHMENT                Enum = 0x8d20
	DEPTH_STENCIL_ATTACHMENT          Enum = 0x821a
	FRAMEBUFFER                       Enum = 0x8d40
	STENCIL_INDEX8                    Enum = 0x8d48
	BUFFER                            Enum = 0x82e0
	SHADER                            Enum = 0x82e1
	PROGRAM                           Enum = 0x82e2
	VERTEX_ARRAY                      Enum = 0x8074
	TEXTURE                           Enum = 0x1702
	COLOR_BUFFER_BIT                  Enum = 0x4000
	DEPTH_BUFFER_BIT                  Enum = 0x0100
	STENCIL_BUFFER_BIT                Enum = 0x0400
	INVALID_INDEX                     uint32 = 0xffffffff
)

// Functions is the subset of OpenGL 4.5 core the backend issues. Object names
// are plain uint32 ids; a zero id means "none". The native package implements
// it on top of go-gl.
type Functions interface {
	GetError() Enum
	GetInteger(pname Enum) int

	CreateBuffer() uint32
	DeleteBuffer(b uint32)
	BindBuffer(target Enum, b uint32)
	BindBufferBase(target Enum, index uint32, b uint32)
	BufferData(target Enum, size int, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)

	CreateVertexArray() uint32
	DeleteVertexArray(a uint32)
	BindVertexArray(a uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride int32, offset uintptr)
	VertexAttribIPointer(index uint32, size int32, typ Enum, stride int32, offset uintptr)

	CreateShader(typ Enum) uint32
	ShaderSource(s uint32, src string)
	CompileShader(s uint32)
	GetShaderi(s uint32, pname Enum) int
	GetShaderInfoLog(s uint32) string
	DeleteShader(s uint32)

	CreateProgram() uint32
	AttachShader(p, s uint32)
	DetachShader(p, s uint32)
	LinkProgram(p uint32)
	GetProgrami(p uint32, pname Enum) int
	GetProgramInfoLog(p uint32) string
	DeleteProgram(p uint32)
	UseProgram(p uint32)

	GetActiveUniform(p uint32, index uint32) (name string, size int32, typ Enum)
	GetUniformLocation(p uint32, name string) int32
	GetActiveUniformBlockName(p uint32, index uint32) string
	GetActiveUniformBlocki(p uint32, index uint32, pname Enum) int
	UniformBlockBinding(p uint32, blockIndex uint32, binding uint32)

	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	Uniform1iv(location int32, v []int32)
	Uniform1i(location int32, v int32)
	UniformMatrix3fv(location int32, v []float32)
	UniformMatrix4fv(location int32, v []float32)

	CreateTexture() uint32
	DeleteTexture(t uint32)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t uint32)
	TexStorage2D(target Enum, levels int32, internalFormat Enum, width, height int32)
	TexSubImage2D(target Enum, level int32, x, y, width, height int32, format, typ Enum, data []byte)
	TexParameteri(target, pname Enum, param int32)
	GenerateMipmap(target Enum)

	CreateFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	BindFramebuffer(target Enum, fb uint32)
	FramebufferTexture2D(target, attachment, texTarget Enum, t uint32, level int32)
	DrawBuffers(bufs []Enum)
	CheckFramebufferStatus(target Enum) Enum

	ClearColor(r, g, b, a float32)
	ClearDepthf(d float32)
	Clear(mask Enum)
	ClearBufferfv(buffer Enum, drawBuffer int32, value []float32)

	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, typ Enum, offset uintptr)

	Viewport(x, y, width, height int32)
	Enable(cap Enum)
	Disable(cap Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	DepthFunc(f Enum)
	DepthMask(mask bool)
	CullFace(mode Enum)

	ObjectLabel(identifier Enum, name uint32, label string)
}
