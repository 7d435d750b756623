// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"path"
	"strings"

	"github.com/deptofdefense/adminscript/pkg/fs"
	"github.com/deptofdefense/adminscript/pkg/lfs"
)

// EmbeddedFileSystem serves a template root from an io/fs file system, such as an embed.FS.
type EmbeddedFileSystem struct {
	fsys iofs.FS
}

func (e *EmbeddedFileSystem) clean(name string) string {
	p := strings.TrimPrefix(path.Clean("/"+name), "/")
	if len(p) == 0 {
		return "."
	}
	return p
}

func (e *EmbeddedFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

func (e *EmbeddedFileSystem) Join(name ...string) string {
	return path.Join(name...)
}

func (e *EmbeddedFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirectoryEntry, error) {
	readDirOutput, err := iofs.ReadDir(e.fsys, e.clean(name))
	if err != nil {
		return nil, err
	}
	directoryEntries := make([]fs.DirectoryEntry, 0, len(readDirOutput))
	for _, directoryEntry := range readDirOutput {
		info, err := directoryEntry.Info()
		if err != nil {
			return nil, err
		}
		directoryEntries = append(directoryEntries, lfs.NewLocalFileInfo(info.Name(), info.ModTime(), info.IsDir(), info.Size()))
	}
	return directoryEntries, nil
}

func (e *EmbeddedFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	info, err := iofs.Stat(e.fsys, e.clean(name))
	if err != nil {
		return nil, err
	}
	return lfs.NewLocalFileInfo(info.Name(), info.ModTime(), info.IsDir(), info.Size()), nil
}

func (e *EmbeddedFileSystem) Open(ctx context.Context, name string) (io.ReadSeeker, error) {
	data, err := iofs.ReadFile(e.fsys, e.clean(name))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func NewEmbeddedFileSystem(fsys iofs.FS) *EmbeddedFileSystem {
	return &EmbeddedFileSystem{fsys: fsys}
}
