package assets

import (
	"context"
	"image"
	"io/fs"
	"sync"
)

// Loader decodes images off the frame goroutine. Callbacks never run on the
// decoding goroutine; they are queued and run by Dispatch.
type Loader struct {
	fsys fs.FS

	mu      sync.Mutex
	ready   []func()
	pending int
	wg      sync.WaitGroup
}

func NewLoader(fsys fs.FS) *Loader {
	if fsys == nil {
		fsys = FS()
	}
	return &Loader{fsys: fsys}
}

// Image decodes synchronously.
func (l *Loader) Image(path string) (image.Image, error) {
	return DecodeImage(l.fsys, path)
}

// LoadImage starts decoding path in the background. done receives the image
// or the error on the next Dispatch after decoding finishes. A cancelled ctx
// delivers ctx.Err().
func (l *Loader) LoadImage(ctx context.Context, path string, done func(image.Image, error)) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		var img image.Image
		err := ctx.Err()
		if err == nil {
			img, err = DecodeImage(l.fsys, path)
		}
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			img = nil
		}

		l.mu.Lock()
		l.ready = append(l.ready, func() { done(img, err) })
		l.mu.Unlock()
	}()
}

// Dispatch runs every completed callback on the calling goroutine and returns
// how many ran.
func (l *Loader) Dispatch() int {
	l.mu.Lock()
	ready := l.ready
	l.ready = nil
	l.pending -= len(ready)
	l.mu.Unlock()

	for _, fn := range ready {
		fn()
	}
	return len(ready)
}

// Pending reports loads that have not been dispatched yet.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait blocks until every started decode has finished. Callbacks still need
// Dispatch.
func (l *Loader) Wait() {
	l.wg.Wait()
}
