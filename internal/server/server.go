// Package server exposes a photo index over HTTP as JSON.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"k8s.io/klog/v2"

	"github.com/simonhull/photostamp/internal/index"
)

// Server serves a photo index. The index is swapped atomically, so it
// can be rebuilt (e.g. from a filesystem watcher) while requests are in
// flight.
type Server struct {
	idx atomic.Pointer[index.Index]
}

// New creates a Server for the given index.
func New(idx *index.Index) *Server {
	s := &Server{}
	s.idx.Store(idx)
	return s
}

// SetIndex replaces the served index.
func (s *Server) SetIndex(idx *index.Index) {
	s.idx.Store(idx)
	klog.Infof("index replaced: %d photos", len(idx.Photos))
}

// Handler returns the HTTP handler tree:
//
//	GET /api/photos        the whole index
//	GET /api/photos/{rel}  one photo by relative path
//	GET /healthz           liveness check
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/photos", methods(http.MethodGet, withJSON(http.HandlerFunc(s.handleIndex))))
	mux.Handle("/api/photos/", methods(http.MethodGet, withJSON(http.HandlerFunc(s.handlePhoto))))
	mux.Handle("/healthz", methods(http.MethodGet, http.HandlerFunc(s.handleHealth)))
	return logged(mux)
}

// ListenAndServe binds addr and serves until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	klog.Infof("listening on %s", addr)
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	if err := json.NewEncoder(w).Encode(s.idx.Load()); err != nil {
		klog.Errorf("encode index: %v", err)
	}
}

func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/api/photos/")
	if rel == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	for _, p := range s.idx.Load().Photos {
		if p.RelPath == rel {
			if err := json.NewEncoder(w).Encode(p); err != nil {
				klog.Errorf("encode photo: %v", err)
			}
			return
		}
	}

	writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
