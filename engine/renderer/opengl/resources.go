package opengl

import (
	"fmt"

	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

// GlVertexBuffer holds one buffer per attribute, all bound to a single
// vertex-array object.
type GlVertexBuffer struct {
	VAO         uint32
	Buffers     [rhi.AttributeKindCount]uint32
	NumBuffers  int
	VertexCount uint32
	Label       string
}

type GlIndexBuffer struct {
	ID          uint32
	ElementType Enum
	ElementSize uint32
	// Count is used by DrawIndexed when the caller passes no count.
	Count uint32
	Label string
}

type GlShader struct {
	ID    uint32
	Stage Enum
	Label string
}

type GlProgram struct {
	ID uint32
	// UniformKeys are the keys this program registered in the uniform cache.
	UniformKeys []uint64
	Label       string
}

// GlTexture is shared by 2D and cube textures; Target tells them apart.
type GlTexture struct {
	ID             uint32
	Target         Enum
	InternalFormat Enum
	Format         Enum
	Type           Enum
	PixelFormat    rhi.PixelFormat
	Width          int32
	Height         int32
	NumMips        uint32
	Label          string
}

type GlFramebuffer struct {
	ID               uint32
	ColorAttachments int
	Label            string
}

type GlConstantBuffer struct {
	ID    uint32
	Size  uint32
	Label string
}

// RIUniform is a logical uniform, resolved against the bound program by name
// at bind time.
type RIUniform struct {
	Name string
	Hash uint64
	Type rhi.UniformType
}

// ResourceStore owns one container per resource kind. The device allocates
// and destroys slots; the context only reads them.
type ResourceStore struct {
	VertexBuffers   *rhi.ResourceContainer[GlVertexBuffer, uint16, rhi.VertexBufferKind]
	IndexBuffers    *rhi.ResourceContainer[GlIndexBuffer, uint16, rhi.IndexBufferKind]
	Shaders         *rhi.ResourceContainer[GlShader, uint16, rhi.ShaderKind]
	Programs        *rhi.ResourceContainer[GlProgram, uint16, rhi.ProgramKind]
	Textures2D      *rhi.ResourceContainer[GlTexture, uint16, rhi.Texture2DKind]
	TexturesCube    *rhi.ResourceContainer[GlTexture, uint16, rhi.TextureCubeKind]
	RenderTargets   *rhi.ResourceContainer[GlFramebuffer, uint8, rhi.RenderTargetKind]
	Uniforms        *rhi.ResourceContainer[RIUniform, uint16, rhi.UniformKind]
	ConstantBuffers *rhi.ResourceContainer[GlConstantBuffer, uint8, rhi.ConstantBufferKind]

	existing *existingUniforms
}

// NewResourceStore sizes every container from limits. Zero limits take the
// defaults.
func NewResourceStore(limits rhi.Limits) (*ResourceStore, error) {
	limits = limits.WithDefaults()
	s := &ResourceStore{existing: newExistingUniforms()}
	var err error
	if s.VertexBuffers, err = rhi.NewResourceContainer[GlVertexBuffer, uint16, rhi.VertexBufferKind](limits.VertexBuffers); err != nil {
		return nil, fmt.Errorf("vertex_buffers: %w", err)
	}
	if s.IndexBuffers, err = rhi.NewResourceContainer[GlIndexBuffer, uint16, rhi.IndexBufferKind](limits.IndexBuffers); err != nil {
		return nil, fmt.Errorf("index_buffers: %w", err)
	}
	if s.Shaders, err = rhi.NewResourceContainer[GlShader, uint16, rhi.ShaderKind](limits.Shaders); err != nil {
		return nil, fmt.Errorf("shaders: %w", err)
	}
	if s.Programs, err = rhi.NewResourceContainer[GlProgram, uint16, rhi.ProgramKind](limits.Programs); err != nil {
		return nil, fmt.Errorf("programs: %w", err)
	}
	if s.Textures2D, err = rhi.NewResourceContainer[GlTexture, uint16, rhi.Texture2DKind](limits.Textures2D); err != nil {
		return nil, fmt.Errorf("textures_2d: %w", err)
	}
	if s.TexturesCube, err = rhi.NewResourceContainer[GlTexture, uint16, rhi.TextureCubeKind](limits.TexturesCube); err != nil {
		return nil, fmt.Errorf("textures_cube: %w", err)
	}
	if s.RenderTargets, err = rhi.NewResourceContainer[GlFramebuffer, uint8, rhi.RenderTargetKind](limits.RenderTargets); err != nil {
		return nil, fmt.Errorf("render_targets: %w", err)
	}
	if s.Uniforms, err = rhi.NewResourceContainer[RIUniform, uint16, rhi.UniformKind](limits.Uniforms); err != nil {
		return nil, fmt.Errorf("uniforms: %w", err)
	}
	if s.ConstantBuffers, err = rhi.NewResourceContainer[GlConstantBuffer, uint8, rhi.ConstantBufferKind](limits.ConstantBuffers); err != nil {
		return nil, fmt.Errorf("constant_buffers: %w", err)
	}
	return s, nil
}
