// Package pubchemtest serves canned PubChem responses over httptest.
package pubchemtest

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// Route is one canned response
type Route struct {
	Status      int // 0 means 200
	Body        string
	ContentType string // defaults to application/json
}

// Server is an httptest server keyed by request path.
// Unknown paths answer 404 with a PUG REST fault body.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	hits   map[string]int
}

// NewServer starts a server for routes; callers must Close it
func NewServer(routes map[string]Route) *Server {
	s := &Server{
		routes: make(map[string]Route, len(routes)),
		hits:   make(map[string]int),
	}
	for path, r := range routes {
		s.routes[path] = r
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Set replaces or adds a route
func (s *Server) Set(path string, r Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = r
}

// Hits returns how many requests path received
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	route, ok := s.routes[r.URL.Path]
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(NotFoundFault))
		return
	}

	contentType := route.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(route.Body))
}

// AspirinRoutes answers every endpoint for aspirin (CID 2244)
func AspirinRoutes() map[string]Route {
	return map[string]Route{
		"/pug/compound/name/aspirin/JSON":           {Body: AspirinCompound},
		"/pug/compound/cid/2244/synonyms/JSON":      {Body: AspirinSynonyms},
		"/pug_view/categories/compound/2244/JSON":   {Body: AspirinVendors},
		"/pug_view/structure/compound/2244/JSON":    {Body: AspirinStructures},
		"/pug/compound/cid/2244/assaysummary/JSON":  {Body: AspirinAssaySummary},
		"/pug_view/data/compound/2244/JSON":         {Body: AspirinPatents},
		"/pug/compound/cid/2244/xrefs/PatentID/TXT": {Body: AspirinDepositorPatents, ContentType: "text/plain"},
		"/pug_view/literature/compound/2244/JSON":   {Body: AspirinLiterature},
	}
}
