// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"context"
	"io"
)

// FileSystem is a read-only root that templates are loaded from.
type FileSystem interface {
	IsNotExist(err error) bool
	Join(name ...string) string
	ReadDir(ctx context.Context, name string) ([]DirectoryEntry, error)
	Stat(ctx context.Context, name string) (FileInfo, error)
	Open(ctx context.Context, name string) (io.ReadSeeker, error)
}
