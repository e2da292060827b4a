// Package index builds an in-memory index of the capture timestamps in
// a photo directory.
package index

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/karrick/godirwalk"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/simonhull/photostamp"
)

// Photo is one indexed image file.
type Photo struct {
	// Path is the absolute location of the file.
	Path string `json:"path"`

	// RelPath is the path relative to the index root, slash-separated.
	RelPath string `json:"rel_path"`

	// Size in bytes.
	Size int64 `json:"size"`

	// ModTime is the filesystem modification time.
	ModTime time.Time `json:"mod_time"`

	// Taken is the capture timestamp, nil when the photo carries none.
	Taken *time.Time `json:"taken,omitempty"`

	// Warnings collected while parsing the photo's metadata.
	Warnings []string `json:"warnings,omitempty"`

	// Err is set when the file could not be parsed at all. A broken
	// file stays in the index so the caller can see it.
	Err string `json:"error,omitempty"`
}

// Index is a point-in-time view of a photo directory.
type Index struct {
	Root    string    `json:"root"`
	BuiltAt time.Time `json:"built_at"`
	Photos  []Photo   `json:"photos"`
}

// Build walks root, parses every JPEG it finds, and returns the photos
// sorted by capture time: dated photos ascending, undated ones after,
// ties broken by relative path.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// A photo that fails to parse is recorded with its error rather than
// failing the whole build; only walk failures and context cancellation
// abort.
func Build(ctx context.Context, root string) (*Index, error) {
	paths, err := collect(root)
	if err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	photos := make([]Photo, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			photos[i] = read(root, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(photos, func(i, j int) bool {
		a, b := photos[i], photos[j]
		switch {
		case a.Taken != nil && b.Taken != nil:
			if !a.Taken.Equal(*b.Taken) {
				return a.Taken.Before(*b.Taken)
			}
			return a.RelPath < b.RelPath
		case a.Taken != nil:
			return true
		case b.Taken != nil:
			return false
		default:
			return a.RelPath < b.RelPath
		}
	})

	klog.Infof("indexed %d photos under %s", len(photos), root)

	return &Index{
		Root:    root,
		BuiltAt: time.Now(),
		Photos:  photos,
	}, nil
}

// read parses one photo. Failures end up in Photo.Err, never as a
// returned error.
func read(root, path string) Photo {
	p := Photo{Path: path}

	if rel, err := filepath.Rel(root, path); err == nil {
		p.RelPath = filepath.ToSlash(rel)
	} else {
		p.RelPath = filepath.ToSlash(path)
	}

	fi, err := os.Stat(path)
	if err != nil {
		klog.Errorf("stat failure: %v", err)
		p.Err = err.Error()
		return p
	}
	p.Size = fi.Size()
	p.ModTime = fi.ModTime()

	f, err := photostamp.Open(path)
	if err != nil {
		klog.V(1).Infof("unable to parse %s: %v", path, err)
		p.Err = err.Error()
		return p
	}

	for _, w := range f.Warnings {
		p.Warnings = append(p.Warnings, w.String())
	}
	if f.HasTimestamp {
		t := f.Taken
		p.Taken = &t
	}

	return p
}

// collect walks root and returns the JPEG paths under it, skipping
// dotfiles and dot-directories.
func collect(root string) ([]string, error) {
	var found []string

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && strings.HasPrefix(filepath.Base(path), ".") {
				return godirwalk.SkipThis
			}
			if de.IsDir() {
				return nil
			}

			switch strings.ToLower(filepath.Ext(path)) {
			case ".jpg", ".jpeg":
				klog.V(2).Infof("found %s", path)
				found = append(found, path)
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}
