package rhi

// MaxColorAttachments is the number of color slots in a RenderTargetDesc.
const MaxColorAttachments = 8

// RenderTargetDesc lists the textures a render target draws into. A slot
// holding an invalid handle is unused.
type RenderTargetDesc struct {
	ColorAttachments [MaxColorAttachments]Texture2DHandle
	Depth            Texture2DHandle
	Stencil          Texture2DHandle
	DepthStencil     Texture2DHandle
	Label            string
}

// ColorAttachmentCount counts the populated color slots.
func (d RenderTargetDesc) ColorAttachmentCount() int {
	n := 0
	for _, h := range d.ColorAttachments {
		if h.IsValid() {
			n++
		}
	}
	return n
}
