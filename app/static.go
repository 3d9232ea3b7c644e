package app

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback/http/middleware"
)

// static serves files from a filesystem for requests whose path begins with prefix.
//
// The prefix is matched as a plain string, so "/static" also claims "/staticky".
type static struct {
	prefix  string
	handler http.Handler
}

func newStatic(prefix string, filesys fs.FS, maxAge time.Duration) *static {
	h := http.StripPrefix(prefix, http.FileServer(http.FS(filesys)))
	return &static{prefix: prefix, handler: middleware.CacheControl(maxAge)(h)}
}

func (s *static) match(r *http.Request, _ *mux.RouteMatch) bool {
	return strings.HasPrefix(r.URL.Path, s.prefix)
}

func (s *static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
