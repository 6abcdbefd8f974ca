package rhi

// Limits fixes the capacity of every resource container. Containers never
// grow, so these bound the number of live GPU objects per kind.
type Limits struct {
	VertexBuffers   int `toml:"vertex_buffers"`
	IndexBuffers    int `toml:"index_buffers"`
	Shaders         int `toml:"shaders"`
	Programs        int `toml:"programs"`
	Textures2D      int `toml:"textures_2d"`
	TexturesCube    int `toml:"textures_cube"`
	RenderTargets   int `toml:"render_targets"`
	Uniforms        int `toml:"uniforms"`
	ConstantBuffers int `toml:"constant_buffers"`
	// MaxTextureUnits caps the units a pass may use. Zero means whatever the driver reports.
	MaxTextureUnits int `toml:"max_texture_units"`
}

func DefaultLimits() Limits {
	return Limits{
		VertexBuffers:   1024,
		IndexBuffers:    1024,
		Shaders:         256,
		Programs:        128,
		Textures2D:      1024,
		TexturesCube:    64,
		RenderTargets:   32,
		Uniforms:        1024,
		ConstantBuffers: 64,
	}
}

// WithDefaults replaces zero capacities with the defaults.
func (l Limits) WithDefaults() Limits {
	d := DefaultLimits()
	fill := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&l.VertexBuffers, d.VertexBuffers)
	fill(&l.IndexBuffers, d.IndexBuffers)
	fill(&l.Shaders, d.Shaders)
	fill(&l.Programs, d.Programs)
	fill(&l.Textures2D, d.Textures2D)
	fill(&l.TexturesCube, d.TexturesCube)
	fill(&l.RenderTargets, d.RenderTargets)
	fill(&l.Uniforms, d.Uniforms)
	fill(&l.ConstantBuffers, d.ConstantBuffers)
	return l
}
