package rhi

// Context binds resources and issues GPU work. It never creates backend
// objects.
//
// The context caches what is currently bound (vertex buffer, index buffer,
// program, texture units in use, render target). Binds persist until they are
// overwritten; EndPass and UnbindTextures reset the texture unit counter.
// Callers are responsible for issuing binds in the right order: uniforms and
// textures resolve against the program bound by BindShaderProgram.
type Context interface {
	BindShaderProgram(h ProgramHandle)
	// BindUniform uploads data to the active program's uniform matching the
	// uniform's name. Accepted data: float32, int32, int, bool, []float32,
	// []int32, [2]float32, [3]float32, [4]float32, [9]float32, [16]float32.
	// An unknown name or a type mismatch is logged and skipped.
	BindUniform(h UniformHandle, data any)
	// BindTexture binds tex to the next free texture unit and points the
	// sampler uniform at it.
	BindTexture(sampler UniformHandle, tex Texture2DHandle)
	BindTextureCube(sampler UniformHandle, tex TextureCubeHandle)
	UnbindTextures()
	MaxTextureUnits() int

	BindVertexBuffer(h VertexBufferHandle)
	BindIndexBuffer(h IndexBufferHandle)
	// DrawIndexed draws count indices starting at startIndex. A zero count
	// draws the whole index buffer.
	DrawIndexed(vb VertexBufferHandle, ib IndexBufferHandle, primitive Primitive, count uint32, startIndex uint32)
	Draw(vb VertexBufferHandle, primitive Primitive, first uint32, count uint32)

	UploadTextureData(h Texture2DHandle, data []byte)
	UploadTextureCubeData(h TextureCubeHandle, side CubeSide, data []byte)

	BindRenderTarget(h RenderTargetHandle)
	BindDefaultRenderTarget()
	// ClearRenderTargetColor clears one color attachment of h without changing
	// which render target draws go to.
	ClearRenderTargetColor(h RenderTargetHandle, attachment int, color ClearColor)
	ClearRenderTargetDepth(h RenderTargetHandle, depth float32)
	// Clear clears the currently bound render target.
	Clear(color ClearColor, depth float32)

	BindConstantBufferToLocation(h ConstantBufferHandle, location uint32)
	UpdateConstantBuffer(h ConstantBufferHandle, offset uint32, data []byte)
	// BindUniformBlock points the active program's uniform block named by
	// block at a constant buffer binding location.
	BindUniformBlock(block UniformHandle, location uint32)

	SetViewport(v Viewport)
	SetBlendState(s BlendState)
	SetDepthState(s DepthState)
	SetCullMode(m CullMode)

	// EndPass resets per-pass state.
	EndPass()
}
