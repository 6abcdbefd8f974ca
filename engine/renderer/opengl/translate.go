package opengl

import (
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

// textureTriple is the internal format, upload format and upload type of a
// pixel format.
type textureTriple struct {
	internalFormat Enum
	format         Enum
	typ            Enum
}

var pixelFormats = map[rhi.PixelFormat]textureTriple{
	rhi.PixelFormatR8:              {R8, RED, UNSIGNED_BYTE},
	rhi.PixelFormatRG8:             {RG8, RG, UNSIGNED_BYTE},
	rhi.PixelFormatRGB8:            {RGB8, RGB, UNSIGNED_BYTE},
	rhi.PixelFormatRGBA8:           {RGBA8, RGBA, UNSIGNED_BYTE},
	rhi.PixelFormatSRGBA8:          {SRGB8_ALPHA8, RGBA, UNSIGNED_BYTE},
	rhi.PixelFormatR16F:            {R16F, RED, HALF_FLOAT},
	rhi.PixelFormatRGBA16F:         {RGBA16F, RGBA, HALF_FLOAT},
	rhi.PixelFormatR32F:            {R32F, RED, FLOAT},
	rhi.PixelFormatRGBA32F:         {RGBA32F, RGBA, FLOAT},
	rhi.PixelFormatDepth24:         {DEPTH_COMPONENT24, DEPTH_COMPONENT, UNSIGNED_INT},
	rhi.PixelFormatDepth32F:        {DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT},
	rhi.PixelFormatDepth24Stencil8: {DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8},
	rhi.PixelFormatStencil8:        {STENCIL_INDEX8, STENCIL_INDEX, UNSIGNED_BYTE},
}

func translatePixelFormat(f rhi.PixelFormat) (textureTriple, bool) {
	t, ok := pixelFormats[f]
	return t, ok
}

func translateFilter(f rhi.TextureFilter) Enum {
	switch f {
	case rhi.TextureFilterNearest:
		return NEAREST
	case rhi.TextureFilterLinear:
		return LINEAR
	case rhi.TextureFilterNearestMipmapNearest:
		return NEAREST_MIPMAP_NEAREST
	case rhi.TextureFilterLinearMipmapNearest:
		return LINEAR_MIPMAP_NEAREST
	case rhi.TextureFilterNearestMipmapLinear:
		return NEAREST_MIPMAP_LINEAR
	case rhi.TextureFilterLinearMipmapLinear:
		return LINEAR_MIPMAP_LINEAR
	}
	return LINEAR
}

func translateWrap(w rhi.TextureWrap) Enum {
	switch w {
	case rhi.TextureWrapRepeat:
		return REPEAT
	case rhi.TextureWrapMirroredRepeat:
		return MIRRORED_REPEAT
	case rhi.TextureWrapClampToEdge:
		return CLAMP_TO_EDGE
	case rhi.TextureWrapClampToBorder:
		return CLAMP_TO_BORDER
	}
	return REPEAT
}

func translateElementType(t rhi.ElementType) Enum {
	switch t {
	case rhi.ElementFloat32:
		return FLOAT
	case rhi.ElementInt32:
		return INT
	case rhi.ElementUint32:
		return UNSIGNED_INT
	case rhi.ElementInt16:
		return SHORT
	case rhi.ElementUint16:
		return UNSIGNED_SHORT
	case rhi.ElementInt8:
		return BYTE
	case rhi.ElementUint8:
		return UNSIGNED_BYTE
	}
	return FLOAT
}

// indexType maps an index element size in bytes to the GL index type.
func indexType(elementSize uint32) (Enum, bool) {
	switch elementSize {
	case 1:
		return UNSIGNED_BYTE, true
	case 2:
		return UNSIGNED_SHORT, true
	case 4:
		return UNSIGNED_INT, true
	}
	return 0, false
}

func translatePrimitive(p rhi.Primitive) Enum {
	switch p {
	case rhi.PrimitivePoints:
		return POINTS
	case rhi.PrimitiveLines:
		return LINES
	case rhi.PrimitiveLineStrip:
		return LINE_STRIP
	case rhi.PrimitiveTriangles:
		return TRIANGLES
	case rhi.PrimitiveTriangleStrip:
		return TRIANGLE_STRIP
	case rhi.PrimitiveTriangleFan:
		return TRIANGLE_FAN
	}
	return TRIANGLES
}

func translateBlendFactor(f rhi.BlendFactor) Enum {
	switch f {
	case rhi.BlendZero:
		return ZERO
	case rhi.BlendOne:
		return ONE
	case rhi.BlendSrcColor:
		return SRC_COLOR
	case rhi.BlendOneMinusSrcColor:
		return ONE_MINUS_SRC_COLOR
	case rhi.BlendDstColor:
		return DST_COLOR
	case rhi.BlendOneMinusDstColor:
		return ONE_MINUS_DST_COLOR
	case rhi.BlendSrcAlpha:
		return SRC_ALPHA
	case rhi.BlendOneMinusSrcAlpha:
		return ONE_MINUS_SRC_ALPHA
	case rhi.BlendDstAlpha:
		return DST_ALPHA
	case rhi.BlendOneMinusDstAlpha:
		return ONE_MINUS_DST_ALPHA
	}
	return ONE
}

func translateBlendOp(op rhi.BlendOp) Enum {
	switch op {
	case rhi.BlendOpAdd:
		return FUNC_ADD
	case rhi.BlendOpSubtract:
		return FUNC_SUBTRACT
	case rhi.BlendOpReverseSubtract:
		return FUNC_REVERSE_SUBTRACT
	case rhi.BlendOpMin:
		return MIN
	case rhi.BlendOpMax:
		return MAX
	}
	return FUNC_ADD
}

func translateCompareFunc(f rhi.CompareFunc) Enum {
	switch f {
	case rhi.CompareLess:
		return LESS
	case rhi.CompareLessEqual:
		return LEQUAL
	case rhi.CompareEqual:
		return EQUAL
	case rhi.CompareGreater:
		return GREATER
	case rhi.CompareGreaterEqual:
		return GEQUAL
	case rhi.CompareNotEqual:
		return NOTEQUAL
	case rhi.CompareAlways:
		return ALWAYS
	case rhi.CompareNever:
		return NEVER
	}
	return LESS
}

func translateCullMode(m rhi.CullMode) Enum {
	switch m {
	case rhi.CullModeFront:
		return FRONT
	case rhi.CullModeBack:
		return BACK
	case rhi.CullModeFrontAndBack:
		return FRONT_AND_BACK
	}
	return 0
}

// uniformTypeOf maps a driver uniform type to the RHI declared type. Unknown
// driver types report false.
func uniformTypeOf(t Enum) (rhi.UniformType, bool) {
	switch t {
	case FLOAT:
		return rhi.UniformFloat, true
	case FLOAT_VEC2:
		return rhi.UniformVec2, true
	case FLOAT_VEC3:
		return rhi.UniformVec3, true
	case FLOAT_VEC4:
		return rhi.UniformVec4, true
	case INT, BOOL:
		return rhi.UniformInt, true
	case FLOAT_MAT3:
		return rhi.UniformMat3, true
	case FLOAT_MAT4:
		return rhi.UniformMat4, true
	case SAMPLER_2D:
		return rhi.UniformSampler2D, true
	case SAMPLER_CUBE:
		return rhi.UniformSamplerCube, true
	}
	return 0, false
}

// isBasicType reports whether a driver uniform type can be set with BindUniform.
func isBasicType(t Enum) bool {
	switch t {
	case FLOAT, FLOAT_VEC2, FLOAT_VEC3, FLOAT_VEC4, INT, BOOL, FLOAT_MAT3, FLOAT_MAT4:
		return true
	}
	return false
}
