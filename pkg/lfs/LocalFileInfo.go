// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"os"
	"time"
)

// LocalFileInfo describes a file or directory and doubles as a directory entry.
type LocalFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	dir     bool
}

func (fi *LocalFileInfo) IsDir() bool {
	return fi.dir
}

func (fi *LocalFileInfo) Name() string {
	return fi.name
}

func (fi *LocalFileInfo) ModTime() time.Time {
	return fi.modTime
}

func (fi *LocalFileInfo) Size() int64 {
	return fi.size
}

func NewLocalFileInfo(name string, modTime time.Time, dir bool, size int64) *LocalFileInfo {
	return &LocalFileInfo{
		name:    name,
		modTime: modTime,
		dir:     dir,
		size:    size,
	}
}

func newLocalFileInfoFromOS(fi os.FileInfo) *LocalFileInfo {
	return NewLocalFileInfo(fi.Name(), fi.ModTime(), fi.IsDir(), fi.Size())
}
