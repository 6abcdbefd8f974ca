package rhi

type Primitive uint8

const (
	PrimitivePoints Primitive = iota
	PrimitiveLines
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
)

type BlendOp uint8

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendState configures color blending for subsequent draws.
type BlendState struct {
	Enabled  bool
	SrcColor BlendFactor
	DstColor BlendFactor
	ColorOp  BlendOp
	SrcAlpha BlendFactor
	DstAlpha BlendFactor
	AlphaOp  BlendOp
}

// AlphaBlending is the usual premultiplied-free "over" operator.
func AlphaBlending() BlendState {
	return BlendState{
		Enabled:  true,
		SrcColor: BlendSrcAlpha,
		DstColor: BlendOneMinusSrcAlpha,
		ColorOp:  BlendOpAdd,
		SrcAlpha: BlendOne,
		DstAlpha: BlendOneMinusSrcAlpha,
		AlphaOp:  BlendOpAdd,
	}
}

type CompareFunc uint8

const (
	CompareLess CompareFunc = iota
	CompareLessEqual
	CompareEqual
	CompareGreater
	CompareGreaterEqual
	CompareNotEqual
	CompareAlways
	CompareNever
)

type DepthState struct {
	TestEnabled  bool
	WriteEnabled bool
	Func         CompareFunc
}

/** @brief Determines face culling mode during rendering. */
type CullMode uint8

const (
	/** @brief No faces are culled. */
	CullModeNone CullMode = iota
	/** @brief Only front faces are culled. */
	CullModeFront
	/** @brief Only back faces are culled. */
	CullModeBack
	/** @brief Both front and back faces are culled. */
	CullModeFrontAndBack
)

type Viewport struct {
	X, Y          int32
	Width, Height int32
}

type ClearColor struct {
	R, G, B, A float32
}
