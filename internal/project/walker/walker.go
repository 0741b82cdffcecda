// Package walker lists the files under a directory for the finder. The walk
// runs on its own goroutines and delivers paths in batches over a channel.
package walker

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/kestrel/internal/project/vfs"
)

// DefaultIgnore lists directory names that are never descended into.
var DefaultIgnore = []string{"node_modules", "target", "dist", "build", "__pycache__", ".git", "vendor"}

// Options configures a walk.
type Options struct {
	// Ignore lists directory names to skip. Nil uses DefaultIgnore.
	Ignore []string

	// MaxFiles stops the walk after this many files. 0 is unlimited.
	MaxFiles int

	// BatchSize is the number of paths per batch. 0 uses 256.
	BatchSize int

	// Workers bounds concurrent directory reads. 0 uses the CPU count.
	Workers int
}

// Batch is a group of files found by a walk. Paths are relative to the
// root and slash-separated. The last batch has Done set; Err is set on it
// when the root itself could not be read.
type Batch struct {
	Paths []string
	Done  bool
	Err   error
}

// Start walks root in the background. The channel is closed after the Done
// batch. Cancelling ctx stops the walk and closes the channel without a
// Done batch.
func Start(ctx context.Context, fsys vfs.FS, root string, opts Options) <-chan Batch {
	out := make(chan Batch, 4)
	go walk(ctx, fsys, root, opts, out)
	return out
}

// Collect runs a walk to completion and returns every path, sorted.
func Collect(ctx context.Context, fsys vfs.FS, root string, opts Options) ([]string, error) {
	var paths []string
	done := false
	for b := range Start(ctx, fsys, root, opts) {
		paths = append(paths, b.Paths...)
		if b.Done {
			if b.Err != nil {
				return nil, b.Err
			}
			done = true
		}
	}
	if !done {
		return nil, ctx.Err()
	}
	slices.Sort(paths)
	return paths, nil
}

func walk(ctx context.Context, fsys vfs.FS, root string, opts Options, out chan<- Batch) {
	defer close(out)

	ignore := opts.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}
	skip := make(map[string]bool, len(ignore))
	for _, name := range ignore {
		skip[name] = true
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 256
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		send(ctx, out, Batch{Done: true, Err: err})
		return
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan string, batchSize)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	var visit func(entries []vfs.FileInfo)
	visit = func(entries []vfs.FileInfo) {
		for _, e := range entries {
			if ctx.Err() != nil {
				return
			}
			switch {
			case e.IsDir():
				if skip[e.Name()] || strings.HasPrefix(e.Name(), ".") {
					continue
				}
				wg.Add(1)
				go func(dir string) {
					defer wg.Done()
					sem <- struct{}{}
					sub, err := fsys.ReadDir(dir)
					<-sem
					if err != nil {
						return
					}
					visit(sub)
				}(e.Path())
			case e.IsRegular():
				rel, err := fsys.Rel(root, e.Path())
				if err != nil {
					continue
				}
				select {
				case found <- filepath.ToSlash(rel):
				case <-ctx.Done():
					return
				}
			}
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		visit(entries)
	}()
	go func() {
		wg.Wait()
		close(found)
	}()

	batch := make([]string, 0, batchSize)
	total := 0
	for p := range found {
		if opts.MaxFiles > 0 && total >= opts.MaxFiles {
			cancel()
			continue
		}
		batch = append(batch, p)
		total++
		if len(batch) == batchSize {
			if !send(ctx, out, Batch{Paths: batch}) {
				cancel()
				continue
			}
			batch = make([]string, 0, batchSize)
		}
	}
	send(parent, out, Batch{Paths: batch, Done: true})
}

func send(ctx context.Context, out chan<- Batch, b Batch) bool {
	select {
	case out <- b:
		return true
	case <-ctx.Done():
		return false
	}
}
