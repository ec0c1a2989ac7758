package batch

import (
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/pixelformat/colourmap"
	"github.com/bodgit/pixelformat/raw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Ignore any file greater than 64 MB
const maxFileSize = 64 << (10 * 2)

func (c *Converter) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || info.Size() > maxFileSize {
				return nil
			}

			// Don't convert our own output
			if filepath.Ext(file) == raw.Ext {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})
	}()
	return out, errc, nil
}

func snapshotName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + raw.Ext
}

func (c *Converter) convertFile(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	m, format, err := image.Decode(f)
	if err != nil {
		if err == image.ErrFormat {
			c.logger.Printf("Skipping \"%s\", not a recognised image\n", file)
			return nil
		}
		return err
	}

	var cm *colourmap.Map
	if !c.pf.TrueColour() {
		if cm, err = colourmap.Quantize(m, colourmap.MaxEntries); err != nil {
			return err
		}
	}

	out, err := os.Create(snapshotName(file))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := raw.WriteSnapshot(out, m, c.pf, cm); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" (%s, %dx%d) to %s\n", file, format, m.Bounds().Dx(), m.Bounds().Dy(), c.pf)

	return out.Close()
}

func (c *Converter) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				return
			}
			if err := c.convertFile(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert walks path and writes a snapshot alongside every image it finds,
// replacing the extension with ".raw". Hidden files and directories are
// skipped. The walk stops when ctx is cancelled or on the first error.
func (c *Converter) Convert(ctx context.Context, path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < c.workers; i++ {
		errc, err := c.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
