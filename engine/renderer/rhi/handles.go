package rhi

// Resource kinds. They carry no data and only exist to make handle types distinct.
type (
	VertexBufferKind   struct{}
	IndexBufferKind    struct{}
	ShaderKind         struct{}
	ProgramKind        struct{}
	Texture2DKind      struct{}
	TextureCubeKind    struct{}
	RenderTargetKind   struct{}
	UniformKind        struct{}
	ConstantBufferKind struct{}
)

func (VertexBufferKind) KindName() string   { return "VertexBuffer" }
func (IndexBufferKind) KindName() string    { return "IndexBuffer" }
func (ShaderKind) KindName() string         { return "Shader" }
func (ProgramKind) KindName() string        { return "Program" }
func (Texture2DKind) KindName() string      { return "Texture2D" }
func (TextureCubeKind) KindName() string    { return "TextureCube" }
func (RenderTargetKind) KindName() string   { return "RenderTarget" }
func (UniformKind) KindName() string        { return "Uniform" }
func (ConstantBufferKind) KindName() string { return "ConstantBuffer" }

type (
	VertexBufferHandle   = Handle[uint16, VertexBufferKind]
	IndexBufferHandle    = Handle[uint16, IndexBufferKind]
	ShaderHandle         = Handle[uint16, ShaderKind]
	ProgramHandle        = Handle[uint16, ProgramKind]
	Texture2DHandle      = Handle[uint16, Texture2DKind]
	TextureCubeHandle    = Handle[uint16, TextureCubeKind]
	RenderTargetHandle   = Handle[uint8, RenderTargetKind]
	UniformHandle        = Handle[uint16, UniformKind]
	ConstantBufferHandle = Handle[uint8, ConstantBufferKind]
)
