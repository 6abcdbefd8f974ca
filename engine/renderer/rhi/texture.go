package rhi

/** @brief Pixel formats a texture can be allocated with. */
type PixelFormat int

const (
	PixelFormatR8 PixelFormat = iota
	PixelFormatRG8
	PixelFormatRGB8
	PixelFormatRGBA8
	PixelFormatSRGBA8
	PixelFormatR16F
	PixelFormatRGBA16F
	PixelFormatR32F
	PixelFormatRGBA32F
	/** @brief 24 bit depth, usable as a depth attachment. */
	PixelFormatDepth24
	/** @brief 32 bit float depth, usable as a depth attachment. */
	PixelFormatDepth32F
	/** @brief Packed depth and stencil, usable as a depth-stencil attachment. */
	PixelFormatDepth24Stencil8
	/** @brief 8 bit stencil, usable as a stencil attachment. */
	PixelFormatStencil8
)

// IsDepth reports whether the format carries a depth component.
func (f PixelFormat) IsDepth() bool {
	return f == PixelFormatDepth24 || f == PixelFormatDepth32F || f == PixelFormatDepth24Stencil8
}

// BytesPerPixel is the CPU side size of one pixel in the upload format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatR8, PixelFormatStencil8:
		return 1
	case PixelFormatRG8, PixelFormatR16F:
		return 2
	case PixelFormatRGB8:
		return 3
	case PixelFormatRGBA8, PixelFormatSRGBA8, PixelFormatR32F, PixelFormatDepth24, PixelFormatDepth32F, PixelFormatDepth24Stencil8:
		return 4
	case PixelFormatRGBA16F:
		return 8
	case PixelFormatRGBA32F:
		return 16
	}
	return 0
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterNearest TextureFilter = iota
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterLinear
	TextureFilterNearestMipmapNearest
	TextureFilterLinearMipmapNearest
	TextureFilterNearestMipmapLinear
	/** @brief Trilinear filtering. Only meaningful with NumMips > 0. */
	TextureFilterLinearMipmapLinear
)

type TextureWrap int

const (
	TextureWrapRepeat TextureWrap = iota
	TextureWrapMirroredRepeat
	TextureWrapClampToEdge
	TextureWrapClampToBorder
)

/** @brief The face of a cube texture, in upload order. */
type CubeSide int

const (
	CubeSidePositiveX CubeSide = iota
	CubeSideNegativeX
	CubeSidePositiveY
	CubeSideNegativeY
	CubeSidePositiveZ
	CubeSideNegativeZ
	CubeSideCount
)

/**
 * @brief Describes a texture before it is created. The device copies what it
 * needs and does not keep the descriptor.
 */
type TextureDesc struct {
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief Number of mip levels below the base level. Storage holds NumMips+1 levels. */
	NumMips uint32
	Format  PixelFormat
	/** @brief Texture filtering mode for minification. */
	MinFilter TextureFilter
	/** @brief Texture filtering mode for magnification. */
	MagFilter TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	WrapS TextureWrap
	/** @brief The repeat mode on the V axis (or Y, or T) */
	WrapT TextureWrap
	/** @brief The repeat mode on the W axis (or Z, or R). Cube textures only. */
	WrapR TextureWrap
	/** @brief Debug label. A generated one is used when empty. */
	Label string
}

// Levels is the number of storage levels the texture needs.
func (d TextureDesc) Levels() uint32 {
	return d.NumMips + 1
}
