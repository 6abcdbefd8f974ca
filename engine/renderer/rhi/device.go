package rhi

// Device creates and destroys GPU objects. It is the only place where backend
// objects get created.
//
// Every Create call is fallible: on failure it logs the reason and returns an
// invalid handle, which callers must check before use.
type Device interface {
	// CreateVertexBuffer uploads every populated attribute of format into its
	// own buffer and records the attribute bindings.
	CreateVertexBuffer(format *VertexBufferFormat) VertexBufferHandle
	// CreateIndexBuffer uploads count indices of elementSize bytes (1, 2 or 4).
	CreateIndexBuffer(elementSize uint32, count uint32, data []byte) IndexBufferHandle
	CreateVertexShader(source string) ShaderHandle
	CreateFragmentShader(source string) ShaderHandle
	// CreateProgram links two shader stages and records the program's active
	// uniforms and uniform blocks. The shader handles stay owned by the caller.
	CreateProgram(vs, fs ShaderHandle) ProgramHandle
	// CreateTexture2D allocates immutable storage. Data is uploaded through
	// Context.UploadTextureData.
	CreateTexture2D(desc TextureDesc) Texture2DHandle
	CreateTextureCube(desc TextureDesc) TextureCubeHandle
	// CreateRenderTarget builds a framebuffer from the attachments of desc. It
	// fails when no color attachment is present or the framebuffer is incomplete.
	CreateRenderTarget(desc RenderTargetDesc) RenderTargetHandle
	// CreateUniform registers a logical uniform. It is resolved against the
	// active program by name when bound.
	CreateUniform(name string, typ UniformType) UniformHandle
	CreateConstantBuffer(size uint32, data []byte) ConstantBufferHandle

	DestroyVertexBuffer(h VertexBufferHandle)
	DestroyIndexBuffer(h IndexBufferHandle)
	DestroyShader(h ShaderHandle)
	DestroyProgram(h ProgramHandle)
	DestroyTexture2D(h Texture2DHandle)
	DestroyTextureCube(h TextureCubeHandle)
	DestroyRenderTarget(h RenderTargetHandle)
	DestroyUniform(h UniformHandle)
	DestroyConstantBuffer(h ConstantBufferHandle)

	// Shutdown destroys every live resource.
	Shutdown()
}
