package rule34

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
)

const indexPath = "/index.php?page=dapi&s=post&q=index"

// apiServer is a stand-in for the post index that counts requests.
type apiServer struct {
	*httptest.Server

	hits    atomic.Int64
	mu      sync.Mutex
	queries []url.Values
	agents  []string
}

func newAPIServer(t *testing.T, handler http.HandlerFunc) *apiServer {
	t.Helper()
	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.mu.Lock()
		s.queries = append(s.queries, r.URL.Query())
		s.agents = append(s.agents, r.Header.Get("User-Agent"))
		s.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *apiServer) lastQuery(t *testing.T) url.Values {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		t.Fatal("no request reached the server")
	}
	return s.queries[len(s.queries)-1]
}

func (s *apiServer) index() string {
	return s.URL + indexPath
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func replyStatus(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = io.WriteString(w, body)
	}
}

func postObject(id int64) map[string]any {
	return map[string]any{
		"preview_url":   "https://example.test/thumbnails/1/thumbnail_a.jpg",
		"sample_url":    "https://example.test/samples/1/sample_a.jpg",
		"file_url":      "https://example.test/images/1/a.png",
		"directory":     1,
		"hash":          "a",
		"height":        800,
		"width":         600,
		"id":            id,
		"image":         "a.png",
		"change":        1700000000,
		"owner":         "uploader",
		"parent_id":     0,
		"rating":        "questionable",
		"sample":        0,
		"sample_height": 0,
		"sample_width":  0,
		"score":         7,
		"tags":          "cat solo",
	}
}

func postsJSON(t *testing.T, ids ...int64) string {
	t.Helper()
	objs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		objs = append(objs, postObject(id))
	}
	return marshalJSON(t, objs)
}

func marshalJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

func newTestClient(t *testing.T, srv *apiServer, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(srv.index(), opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}
