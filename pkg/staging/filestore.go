package staging

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/rootstock/pkg/errors"
)

// FileStore is a MediaStore backed by a directory on the local
// filesystem. Relocate copies the referenced file into the directory and
// returns the new path.
type FileStore struct {
	// Dir is the managed media directory. It is created on first use.
	Dir string
}

// NewFileStore creates a file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Relocate copies ref into the managed directory. The returned reference
// keeps the original base name.
func (f *FileStore) Relocate(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.ErrCanceled
	}
	if f.Dir == "" {
		return "", errors.NewValidationError("dir", "", "media directory not configured")
	}

	src, err := os.Open(ref)
	if err != nil {
		return "", errors.WrapIO("open", ref, err)
	}
	defer src.Close()

	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return "", errors.WrapIO("mkdir", f.Dir, err)
	}

	dst := filepath.Join(f.Dir, filepath.Base(ref))
	out, err := os.Create(dst)
	if err != nil {
		return "", errors.WrapIO("create", dst, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", errors.WrapIO("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", errors.WrapIO("close", dst, err)
	}

	return dst, nil
}
