package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses of at least minSize bytes for clients that send
// Accept-Encoding: gzip. A non-positive minSize uses gzhttp.DefaultMinSize.
func Compress(minSize int) (func(http.Handler) http.Handler, error) {
	if minSize <= 0 {
		minSize = gzhttp.DefaultMinSize
	}

	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}
