// Package storage abstracts the object store that holds uploaded
// certificate and document bytes.
package storage

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"time"
)

// ObjectStore is the minimal surface the upload flows need. Upload
// returns the public URL of the stored object.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader, size int64) (url string, err error)
	Remove(ctx context.Context, objectPath string) error
}

// ObjectPath builds a collision-resistant object path from the original
// file name and its content: <unix-ms>_<md5-8>_<sanitized-name>.
func ObjectPath(fileName string, content []byte) string {
	sum := fmt.Sprintf("%x", md5.Sum(content))[:8]
	return fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), sum, sanitize(fileName))
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
