// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"context"
	"fmt"
	"io"
)

// ReadFile reads the named file from the file system.
func ReadFile(ctx context.Context, fs FileSystem, name string) ([]byte, error) {
	rs, err := fs.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if c, ok := rs.(io.Closer); ok {
		defer c.Close()
	}
	data, err := io.ReadAll(rs)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", name, err)
	}
	return data, nil
}
