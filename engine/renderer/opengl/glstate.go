package opengl

// glState mirrors the driver bindings the backend changes so redundant binds
// can be skipped. The device and the context share one instance because both
// touch the same GL context.
type glState struct {
	program       uint32
	vertexArray   uint32
	arrayBuffer   uint32
	uniformBuffer uint32
	drawFBO       uint32
	activeUnit    Enum
	depthMask     bool

	// textures holds the object bound to each (unit, target) pair.
	textures map[textureBinding]uint32

	// The element buffer binding belongs to the vertex array, so it is only
	// known until the vertex array changes.
	elementBuffer      uint32
	elementBufferKnown bool
}

type textureBinding struct {
	unit   Enum
	target Enum
}

func newGLState() *glState {
	return &glState{
		activeUnit: TEXTURE0,
		depthMask:  true,
		textures:   make(map[textureBinding]uint32),
	}
}

func (s *glState) useProgram(f Functions, p uint32) {
	if s.program == p {
		return
	}
	f.UseProgram(p)
	s.program = p
}

func (s *glState) bindVertexArray(f Functions, a uint32) {
	if s.vertexArray == a {
		return
	}
	f.BindVertexArray(a)
	s.vertexArray = a
	s.elementBufferKnown = false
}

func (s *glState) bindElementBuffer(f Functions, b uint32) {
	if s.elementBufferKnown && s.elementBuffer == b {
		return
	}
	f.BindBuffer(ELEMENT_ARRAY_BUFFER, b)
	s.elementBuffer = b
	s.elementBufferKnown = true
}

func (s *glState) bindBuffer(f Functions, target Enum, b uint32) {
	switch target {
	case ARRAY_BUFFER:
		if s.arrayBuffer == b {
			return
		}
		s.arrayBuffer = b
	case UNIFORM_BUFFER:
		if s.uniformBuffer == b {
			return
		}
		s.uniformBuffer = b
	case ELEMENT_ARRAY_BUFFER:
		s.bindElementBuffer(f, b)
		return
	}
	f.BindBuffer(target, b)
}

func (s *glState) bindFramebuffer(f Functions, fb uint32) {
	if s.drawFBO == fb {
		return
	}
	f.BindFramebuffer(FRAMEBUFFER, fb)
	s.drawFBO = fb
}

func (s *glState) activeTexture(f Functions, unit Enum) {
	if s.activeUnit == unit {
		return
	}
	f.ActiveTexture(unit)
	s.activeUnit = unit
}

// bindTexture binds t to target on the active unit.
func (s *glState) bindTexture(f Functions, target Enum, t uint32) {
	key := textureBinding{unit: s.activeUnit, target: target}
	if cur, ok := s.textures[key]; ok && cur == t {
		return
	}
	f.BindTexture(target, t)
	s.textures[key] = t
}

// withTexture binds t on the active unit while fn runs, then puts back
// whatever the unit had bound to target before.
func (s *glState) withTexture(f Functions, target Enum, t uint32, fn func()) {
	prev := s.textures[textureBinding{unit: s.activeUnit, target: target}]
	s.bindTexture(f, target, t)
	fn()
	s.bindTexture(f, target, prev)
}

func (s *glState) setDepthMask(f Functions, enabled bool) {
	if s.depthMask == enabled {
		return
	}
	f.DepthMask(enabled)
	s.depthMask = enabled
}

func (s *glState) deleteProgram(f Functions, p uint32) {
	f.DeleteProgram(p)
	if s.program == p {
		s.program = 0
	}
}

func (s *glState) deleteVertexArray(f Functions, a uint32) {
	f.DeleteVertexArray(a)
	if s.vertexArray == a {
		s.vertexArray = 0
		s.elementBufferKnown = false
	}
}

func (s *glState) deleteBuffer(f Functions, b uint32) {
	f.DeleteBuffer(b)
	if s.arrayBuffer == b {
		s.arrayBuffer = 0
	}
	if s.uniformBuffer == b {
		s.uniformBuffer = 0
	}
	if s.elementBuffer == b {
		s.elementBufferKnown = false
	}
}

// deleteTexture drops t from every unit, as the driver does.
func (s *glState) deleteTexture(f Functions, t uint32) {
	f.DeleteTexture(t)
	for key, bound := range s.textures {
		if bound == t {
			s.textures[key] = 0
		}
	}
}

func (s *glState) deleteFramebuffer(f Functions, fb uint32) {
	f.DeleteFramebuffer(fb)
	if s.drawFBO == fb {
		s.drawFBO = 0
	}
}
