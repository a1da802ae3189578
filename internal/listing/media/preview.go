package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TempFilePreviews allocates previews as temp files under dir (or the system
// temp dir when empty). Release deletes the file; the sync.Once keeps double
// release harmless.
type TempFilePreviews struct {
	dir string
}

func NewTempFilePreviews(dir string) *TempFilePreviews {
	return &TempFilePreviews{dir: dir}
}

func (p *TempFilePreviews) Acquire(f File) (PreviewHandle, error) {
	tmp, err := os.CreateTemp(p.dir, "preview-*"+filepath.Ext(f.Name))
	if err != nil {
		return nil, fmt.Errorf("create preview file: %w", err)
	}
	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("write preview file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("close preview file: %w", err)
	}
	return &tempFilePreview{path: tmp.Name()}, nil
}

type tempFilePreview struct {
	path string
	once sync.Once
}

func (t *tempFilePreview) URL() string {
	return "file://" + t.path
}

func (t *tempFilePreview) Release() {
	t.once.Do(func() {
		os.Remove(t.path)
	})
}
