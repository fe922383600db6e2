package http

import (
	"io/fs"
	nethttp "net/http"
)

// FS adapts the layered filesystem for the static file server.
func FS(f fs.FS) nethttp.FileSystem {
	return nethttp.FS(f)
}

func FileServer(root nethttp.FileSystem) nethttp.Handler {
	return nethttp.FileServer(root)
}
