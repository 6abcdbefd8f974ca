package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/phoenix/engine/core"
	"github.com/spaghettifunk/phoenix/engine/renderer"
	"github.com/spaghettifunk/phoenix/engine/renderer/rhi"
)

type WindowConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"height"`
	VSync       bool   `toml:"vsync"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	Dir       string `toml:"dir"`
	HotReload bool   `toml:"hot_reload"`
}

type RendererConfig struct {
	Backend string `toml:"backend"`
	// Limits caps every resource container; zero fields use rhi.DefaultLimits.
	Limits rhi.Limits `toml:"limits"`
}

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name     string         `toml:"name"`
	Window   WindowConfig   `toml:"window"`
	Log      LogConfig      `toml:"log"`
	Assets   AssetsConfig   `toml:"assets"`
	Renderer RendererConfig `toml:"rhi"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name: "Phoenix",
		Window: WindowConfig{
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
			VSync:       true,
		},
		Log:    LogConfig{Level: "info"},
		Assets: AssetsConfig{Dir: "assets", HotReload: true},
		Renderer: RendererConfig{
			Backend: renderer.OpenGL.String(),
			Limits:  rhi.DefaultLimits(),
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultApplicationConfig. A missing
// file is not an error.
func LoadConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		core.LogWarn("config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return nil, fmt.Errorf("config %s: %s: %w", path, sme.String(), core.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Window.StartWidth == 0 || c.Window.StartHeight == 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.StartWidth, c.Window.StartHeight, core.ErrInvalidConfig)
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", c.Log.Level, core.ErrInvalidConfig)
	}
	if _, err := renderer.ParseRendererType(c.Renderer.Backend); err != nil {
		return err
	}
	l := c.Renderer.Limits
	for _, v := range []int{l.VertexBuffers, l.IndexBuffers, l.Shaders, l.Programs, l.Textures2D,
		l.TexturesCube, l.RenderTargets, l.Uniforms, l.ConstantBuffers, l.MaxTextureUnits} {
		if v < 0 {
			return fmt.Errorf("rhi limits: negative capacity %d: %w", v, core.ErrInvalidConfig)
		}
	}
	return nil
}

func (c *ApplicationConfig) LogLevel() core.LogLevel {
	level, err := core.ParseLogLevel(c.Log.Level)
	if err != nil {
		return core.InfoLevel
	}
	return level
}
