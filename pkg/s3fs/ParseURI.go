// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"fmt"
	"strings"
)

const (
	Scheme = "s3://"
)

// IsURI returns true if the location uses the s3:// scheme.
func IsURI(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseURI splits a location in the format s3://bucket/prefix into bucket and prefix.
func ParseURI(location string) (string, string, error) {
	if !IsURI(location) {
		return "", "", fmt.Errorf("location %q does not start with %q", location, Scheme)
	}
	parts := strings.Split(strings.TrimPrefix(location, Scheme), "/")
	bucket := parts[0]
	if len(bucket) == 0 {
		return "", "", fmt.Errorf("location %q is missing a bucket", location)
	}
	prefix := strings.Trim(strings.Join(parts[1:], "/"), "/")
	return bucket, prefix, nil
}
