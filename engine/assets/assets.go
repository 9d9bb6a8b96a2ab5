package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/prism/engine/assets/loaders"
	"github.com/spaghettifunk/prism/engine/core"
)

type AssetInfo struct {
	// Path is relative to the asset root, with forward slashes.
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager indexes an asset directory and, once Watch is called, reports
// changed shader programs on Reloads. It never touches the renderer: the render
// thread drains Reloads and rebuilds what it needs.
type AssetManager struct {
	root   string
	assets map[string]AssetInfo

	shaders loaders.ShaderLoader
	images  loaders.ImageLoader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	reloads  chan string
}

func NewAssetManager(root string) (*AssetManager, error) {
	s, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("asset root: %w", err)
	}
	if !s.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", root)
	}

	am := &AssetManager{
		root:    root,
		assets:  make(map[string]AssetInfo),
		reloads: make(chan string, 16),
	}
	if err := am.walk(root, nil); err != nil {
		return nil, err
	}
	return am, nil
}

// Watch starts watching the asset root and all sub-directories.
func (am *AssetManager) Watch() error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	if am.fsnotify != nil {
		return nil
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := am.walk(am.root, fsWatch.Add); err != nil {
		fsWatch.Close()
		return err
	}
	am.fsnotify = fsWatch
	am.done = make(chan struct{})
	am.stopped = make(chan struct{})
	go am.start()
	return nil
}

// Reloads yields the name of a shader whose sources changed. Bursts of writes to
// the same program may collapse into one notification.
func (am *AssetManager) Reloads() <-chan string {
	return am.reloads
}

func (am *AssetManager) Close() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if am.fsnotify != nil {
		close(am.done)
		<-am.stopped
	}
	close(am.reloads)
	return nil
}

func (am *AssetManager) LoadShader(name string) (*loaders.ShaderSource, error) {
	if !am.has(name+".vert") || !am.has(name+".frag") {
		return nil, fmt.Errorf("shader %s: %w", name, core.ErrAssetNotFound)
	}
	src, err := am.shaders.Load(am.root, filepath.FromSlash(name))
	if err != nil {
		return nil, err
	}
	am.touch(name+".vert", name+".frag")
	return src, nil
}

func (am *AssetManager) LoadImage(path string) (image.Image, error) {
	if !am.has(path) {
		return nil, fmt.Errorf("image %s: %w", path, core.ErrAssetNotFound)
	}
	img, err := am.images.Load(filepath.Join(am.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, err
	}
	am.touch(path)
	return img, nil
}

// Assets lists the index sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0, len(am.assets))
	for _, info := range am.assets {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (am *AssetManager) start() {
	defer close(am.stopped)
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
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := am.walk(e.Name, am.fsnotify.Add); err != nil {
				core.LogWarn("asset watcher: failed to watch %s: %s", e.Name, err)
			}
			return
		}
	}

	rel, ok := am.relative(e.Name)
	if !ok {
		return
	}
	switch {
	case e.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if am.index(rel) == AssetTypeShader {
			am.notify(shaderName(rel))
		}
	case e.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		am.remove(rel)
	}
}

// notify drops the name when the consumer is behind; a pending notification for
// the same program already covers it.
func (am *AssetManager) notify(name string) {
	select {
	case am.reloads <- name:
		core.LogDebug("shader %s changed on disk", name)
	default:
	}
}

// walk indexes every file under path and calls watch for every directory.
func (am *AssetManager) walk(path string, watch func(string) error) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch != nil {
				return watch(walkPath)
			}
			return nil
		}
		if rel, ok := am.relative(walkPath); ok {
			am.index(rel)
		}
		return nil
	})
}

func (am *AssetManager) relative(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (am *AssetManager) index(rel string) AssetType {
	assetType := determineAssetType(rel)
	if assetType == AssetTypeNone {
		return assetType
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[rel]
	info.Path = rel
	info.Type = assetType
	am.assets[rel] = info
	return assetType
}

func (am *AssetManager) remove(rel string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, rel)
}

func (am *AssetManager) has(rel string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[rel]
	return ok
}

func (am *AssetManager) touch(rels ...string) {
	now := time.Now()
	am.mutex.Lock()
	defer am.mutex.Unlock()
	for _, rel := range rels {
		if info, ok := am.assets[rel]; ok {
			info.LastLoaded = now
			am.assets[rel] = info
		}
	}
}
