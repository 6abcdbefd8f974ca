package assets

// Loader turns a file on disk into a decoded asset: a GLSL source string for
// shaders, a *loaders.Image for images.
type Loader interface {
	Load(path string) (any, error)
}
