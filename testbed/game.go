package testbed

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/phoenix/engine"
	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

const (
	vertexShaderName   = "shaders/quad.vert"
	fragmentShaderName = "shaders/quad.frag"
	imageName          = "textures/phoenix.png"

	offscreenSize  = 512
	checkerSize    = 64
	frameBlockSize = 32
	frameBinding   = 0
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	width  uint32
	height uint32
	time   float32

	quadVB   rhi.VertexBufferHandle
	quadIB   rhi.IndexBufferHandle
	vs       rhi.ShaderHandle
	fs       rhi.ShaderHandle
	program  rhi.ProgramHandle
	texture  rhi.Texture2DHandle
	color    rhi.Texture2DHandle
	depth    rhi.Texture2DHandle
	target   rhi.RenderTargetHandle
	frameCB  rhi.ConstantBufferHandle
	uTexture rhi.UniformHandle
	uMatrix  rhi.UniformHandle
	uFrame   rhi.UniformHandle
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnOnAssetChanged = tg.OnAssetChanged
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(r *renderer.Renderer, assets engine.AssetSource) error {
	core.LogInfo("initializing testbed...")
	state := g.state()
	device := r.Device()

	var format rhi.VertexBufferFormat
	format.AddFloats(rhi.AttributePosition, 3, []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0.5, 0.5, 0,
		-0.5, 0.5, 0,
	})
	format.AddFloats(rhi.AttributeTexCoord, 2, []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	})
	state.quadVB = device.CreateVertexBuffer(&format)
	indices := []uint16{0, 1, 2, 2, 3, 0}
	state.quadIB = device.CreateIndexBuffer(2, uint32(len(indices)), uint16Bytes(indices))
	if !state.quadVB.IsValid() || !state.quadIB.IsValid() {
		return fmt.Errorf("failed to create the quad geometry")
	}

	if err := g.buildProgram(r, assets); err != nil {
		return err
	}

	state.texture = g.createTexture(r, assets)
	if !state.texture.IsValid() {
		return fmt.Errorf("failed to create the quad texture")
	}

	state.color = device.CreateTexture2D(rhi.TextureDesc{
		Width: offscreenSize, Height: offscreenSize, Format: rhi.PixelFormatRGBA8,
		MinFilter: rhi.TextureFilterLinear, MagFilter: rhi.TextureFilterLinear,
		WrapS: rhi.TextureWrapClampToEdge, WrapT: rhi.TextureWrapClampToEdge,
		Label: "offscreen-color",
	})
	state.depth = device.CreateTexture2D(rhi.TextureDesc{
		Width: offscreenSize, Height: offscreenSize, Format: rhi.PixelFormatDepth24,
		Label: "offscreen-depth",
	})
	desc := rhi.RenderTargetDesc{Depth: state.depth, Label: "offscreen"}
	desc.ColorAttachments[0] = state.color
	state.target = device.CreateRenderTarget(desc)
	if !state.target.IsValid() {
		return fmt.Errorf("failed to create the offscreen render target")
	}

	state.frameCB = device.CreateConstantBuffer(frameBlockSize, nil)
	state.uTexture = device.CreateUniform("u_texture", rhi.UniformSampler2D)
	state.uMatrix = device.CreateUniform("u_transform", rhi.UniformMat4)
	state.uFrame = device.CreateUniform("Frame", rhi.UniformBlock)
	if !state.frameCB.IsValid() {
		return fmt.Errorf("failed to create the frame constant buffer")
	}
	return nil
}

// buildProgram compiles the quad shaders and swaps them in. The previous
// program stays in use when compilation fails.
func (g *TestGame) buildProgram(r *renderer.Renderer, assets engine.AssetSource) error {
	state := g.state()
	device := r.Device()

	vsSource, err := assets.LoadShader(vertexShaderName)
	if err != nil {
		return err
	}
	fsSource, err := assets.LoadShader(fragmentShaderName)
	if err != nil {
		return err
	}

	vs := device.CreateVertexShader(vsSource)
	fs := device.CreateFragmentShader(fsSource)
	program := device.CreateProgram(vs, fs)
	if !program.IsValid() {
		if vs.IsValid() {
			device.DestroyShader(vs)
		}
		if fs.IsValid() {
			device.DestroyShader(fs)
		}
		return fmt.Errorf("failed to build the quad program")
	}

	if state.program.IsValid() {
		device.DestroyProgram(state.program)
		device.DestroyShader(state.vs)
		device.DestroyShader(state.fs)
	}
	state.vs, state.fs, state.program = vs, fs, program
	return nil
}

// createTexture uploads the testbed image when the asset exists and falls back
// to a generated checkerboard.
func (g *TestGame) createTexture(r *renderer.Renderer, assets engine.AssetSource) rhi.Texture2DHandle {
	desc := rhi.TextureDesc{
		Format:    rhi.PixelFormatRGBA8,
		MinFilter: rhi.TextureFilterNearest,
		MagFilter: rhi.TextureFilterNearest,
		WrapS:     rhi.TextureWrapRepeat,
		WrapT:     rhi.TextureWrapRepeat,
	}

	var pixels []byte
	if img, err := assets.LoadImage(imageName); err == nil {
		desc.Width, desc.Height, desc.Label = img.Width, img.Height, imageName
		desc.MinFilter, desc.MagFilter = rhi.TextureFilterLinear, rhi.TextureFilterLinear
		pixels = img.Pixels
	} else {
		core.LogDebug("no %s (%s), using a checkerboard", imageName, err)
		desc.Width, desc.Height, desc.Label = checkerSize, checkerSize, "checkerboard"
		pixels = Checkerboard(checkerSize, 8)
	}

	h := r.Device().CreateTexture2D(desc)
	if h.IsValid() {
		r.Context().UploadTextureData(h, pixels)
	}
	return h
}

func (g *TestGame) Update(deltaTime float64) error {
	g.state().time += float32(deltaTime)
	return nil
}

func (g *TestGame) Render(r *renderer.Renderer, deltaTime float64) error {
	state := g.state()
	ctx := r.Context()

	ctx.BindShaderProgram(state.program)
	ctx.BindConstantBufferToLocation(state.frameCB, frameBinding)
	ctx.BindUniformBlock(state.uFrame, frameBinding)
	ctx.SetDepthState(rhi.DepthState{TestEnabled: true, WriteEnabled: true, Func: rhi.CompareLess})
	ctx.SetCullMode(rhi.CullModeNone)

	// offscreen pass: the spinning textured quad
	ctx.BindRenderTarget(state.target)
	ctx.SetViewport(rhi.Viewport{Width: offscreenSize, Height: offscreenSize})
	ctx.ClearRenderTargetColor(state.target, 0, rhi.ClearColor{R: 0.1, G: 0.1, B: 0.15, A: 1})
	ctx.ClearRenderTargetDepth(state.target, 1)
	ctx.UpdateConstantBuffer(state.frameCB, 0, frameBlock([4]float32{1, 0.6, 0.3, 1}, state.time))
	ctx.BindUniform(state.uMatrix, Rotation(state.time, 1))
	ctx.BindTexture(state.uTexture, state.texture)
	ctx.DrawIndexed(state.quadVB, state.quadIB, rhi.PrimitiveTriangles, 0, 0)
	ctx.UnbindTextures()
	ctx.EndPass()

	// screen pass: the offscreen colour attachment on a quad filling the window
	ctx.BindDefaultRenderTarget()
	ctx.SetViewport(rhi.Viewport{Width: int32(state.width), Height: int32(state.height)})
	ctx.SetDepthState(rhi.DepthState{})
	ctx.SetBlendState(rhi.AlphaBlending())
	ctx.UpdateConstantBuffer(state.frameCB, 0, frameBlock([4]float32{1, 1, 1, 1}, 0))
	ctx.BindUniform(state.uMatrix, Scale(1.6, aspect(state.width, state.height)))
	ctx.BindTexture(state.uTexture, state.color)
	ctx.DrawIndexed(state.quadVB, state.quadIB, rhi.PrimitiveTriangles, 0, 0)
	ctx.UnbindTextures()
	ctx.SetBlendState(rhi.BlendState{})
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.state()
	state.width, state.height = width, height
	return nil
}

func (g *TestGame) OnAssetChanged(r *renderer.Renderer, assets engine.AssetSource, name string) error {
	if name != vertexShaderName && name != fragmentShaderName {
		return nil
	}
	if err := g.buildProgram(r, assets); err != nil {
		return err
	}
	core.LogInfo("rebuilt program from %s", name)
	return nil
}

func (g *TestGame) Shutdown(r *renderer.Renderer) error {
	core.LogInfo("shutting down testbed")
	state := g.state()
	device := r.Device()
	// Initialize may have stopped half way
	destroy(state.target, device.DestroyRenderTarget)
	destroy(state.color, device.DestroyTexture2D)
	destroy(state.depth, device.DestroyTexture2D)
	destroy(state.texture, device.DestroyTexture2D)
	destroy(state.program, device.DestroyProgram)
	destroy(state.vs, device.DestroyShader)
	destroy(state.fs, device.DestroyShader)
	destroy(state.quadIB, device.DestroyIndexBuffer)
	destroy(state.quadVB, device.DestroyVertexBuffer)
	destroy(state.frameCB, device.DestroyConstantBuffer)
	return nil
}

func destroy[H interface{ IsValid() bool }](h H, fn func(H)) {
	if h.IsValid() {
		fn(h)
	}
}

// Checkerboard returns size*size RGBA8 pixels in squares of cell pixels.
func Checkerboard(size, cell int) []byte {
	pixels := make([]byte, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := byte(0x30)
			if (x/cell+y/cell)%2 == 0 {
				v = 0xf0
			}
			pixels = append(pixels, v, v, v, 0xff)
		}
	}
	return pixels
}

// Rotation is a column-major rotation around z by angle radians, scaled by s.
func Rotation(angle, s float32) [16]float32 {
	c, n := math32.Cos(angle)*s, math32.Sin(angle)*s
	return [16]float32{
		c, n, 0, 0,
		-n, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scale is a column-major scale keeping a square quad square on a window of
// the given aspect ratio.
func Scale(s, aspect float32) [16]float32 {
	sx := s
	if aspect > 0 {
		sx = s / aspect
	}
	return [16]float32{
		sx, 0, 0, 0,
		0, s, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func aspect(width, height uint32) float32 {
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// frameBlock lays out the std140 Frame block: vec4 tint, float time.
func frameBlock(tint [4]float32, time float32) []byte {
	b := make([]byte, 0, frameBlockSize)
	for _, v := range tint {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(time))
	return b
}

func uint16Bytes(values []uint16) []byte {
	b := make([]byte, 0, len(values)*2)
	for _, v := range values {
		b = binary.LittleEndian.AppendUint16(b, v)
	}
	return b
}
