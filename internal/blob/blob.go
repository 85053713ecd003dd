// Package blob uploads run artifacts to a local directory or an S3-compatible bucket.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/san-kum/liquid/internal/dynamo"
)

// Driver identifies a blob backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	// URL is a human readable location of key.
	URL(key string) string
	Driver() Driver
}

// Open parses a destination such as s3://bucket/prefix or /some/dir and
// returns the store and the key prefix within it.
func Open(ctx context.Context, dest string) (Store, string, error) {
	if strings.HasPrefix(dest, "s3://") {
		u, err := url.Parse(dest)
		if err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", dest, err)
		}
		st, err := OpenS3FromEnv(ctx, u.Host)
		if err != nil {
			return nil, "", err
		}
		return st, strings.Trim(u.Path, "/"), nil
	}

	root := strings.TrimPrefix(dest, "file://")
	st, err := NewFS(root)
	if err != nil {
		return nil, "", err
	}
	return st, "", nil
}

// UploadFile copies the file at src to prefix/key and returns its URL.
// Failures wrap dynamo.ErrOutput.
func UploadFile(ctx context.Context, st Store, prefix, key, src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", &dynamo.OutputError{Path: src, Wrapped: err}
	}

	full := path.Join(prefix, key)
	_, err = st.Put(ctx, full, bytes.NewReader(data), PutOptions{
		ContentType: "text/tab-separated-values",
		Metadata:    map[string]string{"source": path.Base(src)},
	})
	if err != nil {
		return "", &dynamo.OutputError{Path: st.URL(full), Wrapped: err}
	}
	return st.URL(full), nil
}
