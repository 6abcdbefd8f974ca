package engine

import (
	"github.com/spaghettifunk/phoenix/engine/assets/loaders"
	"github.com/spaghettifunk/phoenix/engine/renderer"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnOnAssetChanged  OnAssetChanged
	FnShutdown        Shutdown
}

type Initialize func(r *renderer.Renderer, assets AssetSource) error
type Update func(deltaTime float64) error
type Render func(r *renderer.Renderer, deltaTime float64) error
type OnResize func(width uint32, height uint32) error

// OnAssetChanged is called on the render thread after an asset was rewritten
// on disk, with the asset name relative to the asset directory.
type OnAssetChanged func(r *renderer.Renderer, assets AssetSource, name string) error
type Shutdown func(r *renderer.Renderer) error

// AssetSource is the part of the asset manager a game sees.
type AssetSource interface {
	LoadShader(name string) (string, error)
	LoadImage(name string) (*loaders.Image, error)
}
