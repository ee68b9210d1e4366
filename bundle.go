package chartkick

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/gochartkick/chartkick/chtml"
	"github.com/gochartkick/chartkick/data"
	"github.com/gochartkick/chartkick/parse"
	"github.com/gochartkick/chartkick/parsepasses"
	"github.com/gochartkick/chartkick/template"
)

// Logger is used to print notifications and compile errors when using the
// "WatchFiles" feature.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Str("pkg", "chartkick").Logger()

type pageFile struct{ name, content string }

// Bundle is a collection of pages and globals.  It acts as input for the
// compiler.
type Bundle struct {
	files                 []pageFile
	globals               data.Map
	staticURL             string
	err                   error
	watcher               *fsnotify.Watcher
	recompilationCallback func(*template.Registry)
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{globals: make(data.Map)}
}

// WatchFiles tells the bundle to watch any page files added to it,
// re-compile as necessary, and propagate the updates to your tofu.  It should
// be called once, before adding any files.
func (b *Bundle) WatchFiles(watch bool) *Bundle {
	if watch && b.err == nil && b.watcher == nil {
		b.watcher, b.err = fsnotify.NewWatcher()
	}
	return b
}

// Close stops watching files.
func (b *Bundle) Close() error {
	if b.watcher == nil {
		return nil
	}
	return b.watcher.Close()
}

// AddTemplateDir adds all *.html files found within the given directory
// (including sub-directories) to the bundle.
func (b *Bundle) AddTemplateDir(root string) *Bundle {
	var err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".html") {
			return nil
		}
		b.AddTemplateFile(path)
		return nil
	})
	if err != nil {
		b.err = err
	}
	return b
}

// AddTemplateFile adds the given page file to this bundle.  If WatchFiles is
// on, it will be subsequently watched for updates.
func (b *Bundle) AddTemplateFile(filename string) *Bundle {
	content, err := os.ReadFile(filename)
	if err != nil {
		b.err = err
	}
	if b.err == nil && b.watcher != nil {
		b.err = b.watcher.Add(filename)
	}
	return b.AddTemplateString(filename, string(content))
}

// AddTemplateString adds the given page to the bundle.  The page is rendered
// by this name, which need not be a real filename.
func (b *Bundle) AddTemplateString(filename, content string) *Bundle {
	b.files = append(b.files, pageFile{filename, content})
	return b
}

// AddGlobalsFile opens and parses the given filename for globals, and adds
// the resulting data map to the bundle.
func (b *Bundle) AddGlobalsFile(filename string) *Bundle {
	var f, err = os.Open(filename)
	if err != nil {
		b.err = err
		return b
	}
	globals, err := ParseGlobals(f)
	if err != nil {
		b.err = fmt.Errorf("%s: %w", filename, err)
	}
	f.Close()
	return b.AddGlobalsMap(globals)
}

// AddGlobalsMap adds the given values to every page's render context.
func (b *Bundle) AddGlobalsMap(globals data.Map) *Bundle {
	for k, v := range globals {
		if existing, ok := b.globals[k]; ok {
			b.err = fmt.Errorf("global %q already defined as %q", k, existing)
			return b
		}
		b.globals[k] = v
	}
	return b
}

// StaticURL sets the base URL that chartkick.js is served from.  It is
// required by pages that include the chartkick scripts.
func (b *Bundle) StaticURL(url string) *Bundle {
	b.staticURL = url
	return b
}

// SetRecompilationCallback assigns the bundle a function to call after
// recompilation.  This is called before updating the in-use registry.
func (b *Bundle) SetRecompilationCallback(c func(*template.Registry)) *Bundle {
	b.recompilationCallback = c
	return b
}

// Compile parses all of the pages in this bundle and returns the completed
// registry.  Every chart tag is parsed, so syntax errors are reported here
// rather than at render time.
func (b *Bundle) Compile() (*template.Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	var registry = &template.Registry{}
	for _, file := range b.files {
		var page, err = parse.Page(file.name, file.content)
		if err != nil {
			return nil, err
		}
		if err = registry.Add(page); err != nil {
			return nil, err
		}
	}

	// Apply the post-parse checks
	if err := parsepasses.CheckScripts(registry, b.staticURL); err != nil {
		return nil, err
	}

	if b.watcher != nil {
		go b.recompiler(registry)
	}
	return registry, nil
}

// CompileToTofu returns a chtml.Tofu object that allows you to render pages
// to HTML.
func (b *Bundle) CompileToTofu() (*chtml.Tofu, error) {
	var registry, err = b.Compile()
	if err != nil {
		return nil, err
	}
	return chtml.NewTofu(registry, b.staticURL).AddGlobals(b.globals), nil
}

func (b *Bundle) recompiler(reg *template.Registry) {
	for {
		select {
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			// If it's a rename, then fsnotify has removed the watch.
			// Add it back, after a delay.
			if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(10 * time.Millisecond)
				if err := b.watcher.Add(ev.Name); err != nil {
					Logger.Error().Err(err).Str("file", ev.Name).Msg("failed to re-watch file")
				}
			}

			// Recompile all the pages.
			var bundle = NewBundle().
				AddGlobalsMap(b.globals).
				StaticURL(b.staticURL)
			for _, file := range b.files {
				bundle.AddTemplateFile(file.name)
			}
			var registry, err = bundle.Compile()
			if err != nil {
				Logger.Error().Err(err).Msg("recompile failed")
				continue
			}

			if b.recompilationCallback != nil {
				b.recompilationCallback(registry)
			}

			reg.Replace(registry)
			Logger.Info().Str("file", ev.Name).Stringer("op", ev.Op).Msg("update successful")

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			// Nothing to do with errors
			Logger.Error().Err(err).Msg("watch error")
		}
	}
}
