package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// careerSite serves a listing page with the given theme cards and one
// detail page per card.
type careerSite struct {
	mu    sync.Mutex
	roles map[string][]string
	cards [][2]string
}

func newCareerSite(t *testing.T, cards [][2]string, roles map[string][]string) (*careerSite, *httptest.Server) {
	t.Helper()

	site := &careerSite{cards: cards, roles: roles}
	srv := httptest.NewServer(site)
	t.Cleanup(srv.Close)
	return site, srv
}

func (s *careerSite) setRoles(path string, hrefs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[path] = hrefs
}

func (s *careerSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if r.URL.Path == "/" {
		var sb strings.Builder
		sb.WriteString(`<html><body><div name="browseByThemes">`)
		for _, c := range s.cards {
			sb.WriteString(`<a class="_1frdw130" href="` + c[1] + `">` + c[0] + `</a>`)
		}
		sb.WriteString(`</div></body></html>`)
		_, _ = w.Write([]byte(sb.String()))
		return
	}

	hrefs, ok := s.roles[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	var sb strings.Builder
	sb.WriteString(`<html><body>`)
	for _, h := range hrefs {
		sb.WriteString(`<a data-analytics-action="Click - Role card" href="` + h + `">role</a>`)
	}
	sb.WriteString(`</body></html>`)
	_, _ = w.Write([]byte(sb.String()))
}

// executeRoot runs the root command with args and returns its stdout.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}
