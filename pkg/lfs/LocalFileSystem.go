// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/deptofdefense/adminscript/pkg/fs"
)

// LocalFileSystem is a read-only template root on a local directory.
type LocalFileSystem struct {
	fs afero.Fs
}

func (lfs *LocalFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (lfs *LocalFileSystem) Join(name ...string) string {
	return filepath.Join(name...)
}

func (lfs *LocalFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirectoryEntry, error) {
	directoryEntries := []fs.DirectoryEntry{}
	readDirOutput, err := afero.ReadDir(lfs.fs, name)
	if err != nil {
		return nil, err
	}
	for _, info := range readDirOutput {
		directoryEntries = append(directoryEntries, newLocalFileInfoFromOS(info))
	}
	return directoryEntries, nil
}

func (lfs *LocalFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	return newLocalFileInfoFromOS(fi), nil
}

func (lfs *LocalFileSystem) Open(ctx context.Context, name string) (io.ReadSeeker, error) {
	f, err := lfs.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewLocalFileSystemFromFs returns a read-only file system rooted at rootPath within the given afero file system.
func NewLocalFileSystemFromFs(base afero.Fs, rootPath string) *LocalFileSystem {
	lfs := afero.NewBasePathFs(afero.NewReadOnlyFs(base), rootPath)
	return &LocalFileSystem{
		fs: lfs,
	}
}
