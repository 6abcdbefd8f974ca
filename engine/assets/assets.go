package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/phoenix/engine/assets/loaders"
	"github.com/spaghettifunk/phoenix/engine/core"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
	AssetTypeImage
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeShader:
		return "shader"
	case AssetTypeImage:
		return "image"
	default:
		return "none"
	}
}

var (
	ErrNoLoader = errors.New("no loader registered")
	ErrClosed   = errors.New("asset manager closed")
)

type AssetInfo struct {
	// Name is the slash separated path relative to the asset root.
	Name       string
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, 64),
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes every known asset below assetsDir and starts watching it.
func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	if err := am.watchRecursive(root); err != nil {
		return fmt.Errorf("watch %s: %w", assetsDir, err)
	}

	am.registerLoader(AssetTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(AssetTypeImage, &loaders.ImageLoader{FlipY: true})

	am.started = true
	am.wg.Add(1)
	go am.start()

	core.LogInfo("asset manager watching %s (%d assets)", assetsDir, am.Len())
	return nil
}

// Changes reports the names of assets that were created or rewritten on disk.
// The channel is closed by Shutdown.
func (am *AssetManager) Changes() <-chan string {
	return am.changes
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Info returns the index entry for the asset name, e.g. "shaders/quad.vert".
func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[name]
	return info, ok
}

func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads an indexed asset through the loader registered for its type.
func (am *AssetManager) LoadAsset(name string) (any, error) {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil, ErrClosed
	}
	asset, exists := am.assets[name]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	asset.LastLoaded = time.Now()
	am.assets[name] = asset
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w for %s assets", ErrNoLoader, asset.Type)
	}
	return loader.Load(asset.Path)
}

func (am *AssetManager) LoadShader(name string) (string, error) {
	data, err := am.LoadAsset(name)
	if err != nil {
		return "", err
	}
	src, ok := data.(string)
	if !ok {
		return "", fmt.Errorf("asset %s is not a shader", name)
	}
	return src, nil
}

func (am *AssetManager) LoadImage(name string) (*loaders.Image, error) {
	data, err := am.LoadAsset(name)
	if err != nil {
		return nil, err
	}
	img, ok := data.(*loaders.Image)
	if !ok {
		return nil, fmt.Errorf("asset %s is not an image", name)
	}
	return img, nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	if !am.started {
		close(am.changes)
		return am.fsnotify.Close()
	}
	return nil
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			close(am.changes)
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogError("asset watcher: %s", err)
			}
			return
		}
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if name, ok := am.indexFile(e.Name); ok {
			am.notify(name)
		}
	}
	// a removed directory can't be stat'ed; the watcher drops it on its own
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(e.Name)
	}
}

func (am *AssetManager) notify(name string) {
	select {
	case am.changes <- name:
	default:
		core.LogWarn("asset change queue full, dropping %s", name)
	}
}

// watchRecursive adds every directory under path to the watch list and
// indexes the files found along the way.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.indexFile(walkPath)
		return nil
	})
}

func (am *AssetManager) assetName(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (am *AssetManager) indexFile(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return "", false
	}
	name, ok := am.assetName(path)
	if !ok {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = AssetInfo{
		Name: name,
		Path: path,
		Type: assetType,
	}
	return name, true
}

func (am *AssetManager) removeAsset(path string) {
	name, ok := am.assetName(path)
	if !ok {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, name)
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".glsl":
		return AssetTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return AssetTypeImage
	default:
		return AssetTypeNone
	}
}
