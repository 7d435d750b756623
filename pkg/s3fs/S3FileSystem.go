// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/deptofdefense/adminscript/pkg/fs"
)

// S3FileSystem is a read-only template root under a prefix of one bucket.
type S3FileSystem struct {
	bucket string
	prefix string
	client Client
}

func (s3fs *S3FileSystem) key(name string) string {
	name = strings.TrimPrefix(name, "/")
	if len(s3fs.prefix) == 0 {
		return name
	}
	if len(name) == 0 {
		return s3fs.prefix
	}
	return s3fs.Join(s3fs.prefix, name)
}

func (s3fs *S3FileSystem) directoryPrefix(name string) string {
	k := s3fs.key(name)
	if len(k) == 0 {
		return ""
	}
	return k + "/"
}

func (s3fs *S3FileSystem) HeadObject(ctx context.Context, name string) (*S3FileInfo, error) {
	headObjectOutput, err := s3fs.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s3fs.bucket),
		Key:    aws.String(s3fs.key(name)),
	})
	if err != nil {
		return nil, err
	}
	fi := NewS3FileInfo(
		path.Base(name),
		aws.ToTime(headObjectOutput.LastModified),
		false,
		headObjectOutput.ContentLength,
	)
	return fi, nil
}

func (s3fs *S3FileSystem) IsNotExist(err error) bool {
	var responseError *http.ResponseError
	if errors.As(err, &responseError) {
		if responseError.HTTPStatusCode() == 404 {
			return true
		}
	}
	return false
}

func (s3fs *S3FileSystem) Join(name ...string) string {
	return path.Join(name...)
}

// nextMarker returns the marker for the page after a truncated listing.
// Without a NextMarker, the listing continues after the greatest key or common prefix of the page.
func nextMarker(listObjectsOutput *s3.ListObjectsOutput) string {
	if next := aws.ToString(listObjectsOutput.NextMarker); len(next) > 0 {
		return next
	}
	last := ""
	if n := len(listObjectsOutput.Contents); n > 0 {
		last = aws.ToString(listObjectsOutput.Contents[n-1].Key)
	}
	if n := len(listObjectsOutput.CommonPrefixes); n > 0 {
		if p := aws.ToString(listObjectsOutput.CommonPrefixes[n-1].Prefix); p > last {
			last = p
		}
	}
	return last
}

func (s3fs *S3FileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirectoryEntry, error) {
	prefix := s3fs.directoryPrefix(name)
	directoryEntries := []fs.DirectoryEntry{}
	var marker *string
	for {
		listObjectsInput := &s3.ListObjectsInput{
			Bucket:    aws.String(s3fs.bucket),
			Delimiter: aws.String("/"),
			Prefix:    aws.String(prefix),
		}
		if marker != nil {
			listObjectsInput.Marker = marker
		}
		listObjectsOutput, err := s3fs.client.ListObjects(ctx, listObjectsInput)
		if err != nil {
			return nil, fmt.Errorf("error listing objects with prefix %q: %w", prefix, err)
		}
		for _, commonPrefix := range listObjectsOutput.CommonPrefixes {
			directoryName := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(commonPrefix.Prefix), prefix), "/")
			directoryEntries = append(directoryEntries, NewS3FileInfo(directoryName, time.Time{}, true, 0))
		}
		for _, object := range listObjectsOutput.Contents {
			key := aws.ToString(object.Key)
			// skip folder placeholder objects
			if key == prefix || strings.HasSuffix(key, "/") {
				continue
			}
			directoryEntries = append(directoryEntries, NewS3FileInfo(
				path.Base(key),
				aws.ToTime(object.LastModified),
				false,
				object.Size,
			))
		}
		if !listObjectsOutput.IsTruncated {
			break
		}
		next := nextMarker(listObjectsOutput)
		if len(next) == 0 || (marker != nil && next <= *marker) {
			return nil, fmt.Errorf("error listing objects with prefix %q: listing is truncated but has no next marker", prefix)
		}
		marker = aws.String(next)
	}
	return directoryEntries, nil
}

func (s3fs *S3FileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if strings.Trim(name, "/") == "" {
		return NewS3FileInfo("/", time.Time{}, true, 0), nil
	}

	directoryEntries, err := s3fs.ReadDir(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %q: %w", name, err)
	}
	if len(directoryEntries) > 0 {
		return NewS3FileInfo(path.Base(name), time.Time{}, true, 0), nil
	}

	fi, err := s3fs.HeadObject(ctx, name)
	if err != nil {
		return nil, err
	}
	return fi, nil
}

func (s3fs *S3FileSystem) Open(ctx context.Context, name string) (io.ReadSeeker, error) {
	fi, err := s3fs.HeadObject(ctx, name)
	if err != nil {
		return nil, err
	}
	key := s3fs.key(name)
	rs := NewReadSeeker(
		0,
		fi.Size(),
		func(offset int64, p []byte) (int, error) {
			getObjectOutput, err := s3fs.client.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(s3fs.bucket),
				Key:    aws.String(key),
				Range:  aws.String(fmt.Sprintf("bytes=%d-%d", offset, int(offset)+len(p)-1)),
			})
			if err != nil {
				return 0, err
			}
			defer getObjectOutput.Body.Close()
			body, err := io.ReadAll(getObjectOutput.Body)
			if err != nil {
				return 0, err
			}
			n := copy(p, body)
			if n == 0 {
				return 0, io.ErrUnexpectedEOF
			}
			return n, nil
		},
	)
	return rs, nil
}

func NewS3FileSystem(bucket string, prefix string, client Client) *S3FileSystem {
	return &S3FileSystem{
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		client: client,
	}
}
