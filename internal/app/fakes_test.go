package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeItem struct {
	ID                string `json:"Id"`
	Name              string `json:"Name"`
	Type              string `json:"Type"`
	SeriesName        string `json:"SeriesName,omitempty"`
	ParentIndexNumber *int   `json:"ParentIndexNumber,omitempty"`
	IndexNumber       *int   `json:"IndexNumber,omitempty"`
	Container         string `json:"Container,omitempty"`
	MediaSources      []struct {
		Size int64 `json:"Size"`
	} `json:"MediaSources,omitempty"`
}

func movieItem(id, name string, size int64) fakeItem {
	item := fakeItem{ID: id, Name: name, Type: "Movie", Container: "mkv"}
	if size > 0 {
		item.MediaSources = []struct {
			Size int64 `json:"Size"`
		}{{Size: size}}
	}
	return item
}

func episodeItem(id, series string, season, number int, name string) fakeItem {
	return fakeItem{
		ID:                id,
		Name:              name,
		Type:              "Episode",
		SeriesName:        series,
		ParentIndexNumber: &season,
		IndexNumber:       &number,
	}
}

// fakeJellyfin serves the subset of the Jellyfin API the client uses.
type fakeJellyfin struct {
	t         *testing.T
	password  string
	favorites []fakeItem
	children  map[string][]fakeItem
	files     map[string]string
	failing   map[string]bool

	mu            sync.Mutex
	authorization string
	listed        []string
	downloads     []string
}

func newFakeJellyfin(t *testing.T) *fakeJellyfin {
	return &fakeJellyfin{
		t:        t,
		password: "secret",
		children: map[string][]fakeItem{},
		files:    map[string]string{},
		failing:  map[string]bool{},
	}
}

func (f *fakeJellyfin) start() string {
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	f.t.Cleanup(server.Close)
	return server.URL
}

func (f *fakeJellyfin) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/Users/AuthenticateByName":
		f.authenticate(w, r)
	case r.URL.Path == "/Users/user-1/Items":
		f.items(w, r)
	case strings.HasPrefix(r.URL.Path, "/Items/") && strings.HasSuffix(r.URL.Path, "/Download"):
		f.download(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeJellyfin) authenticate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.authorization = r.Header.Get("X-Emby-Authorization")
	f.mu.Unlock()

	var body struct {
		Username string `json:"Username"`
		Pw       string `json:"Pw"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Pw != f.password {
		http.Error(w, "Invalid user or password", http.StatusUnauthorized)
		return
	}
	io.WriteString(w, `{"AccessToken":"tok-1","User":{"Id":"user-1","Name":"`+body.Username+`"}}`)
}

func (f *fakeJellyfin) items(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Emby-Token") != "tok-1" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	parent := r.URL.Query().Get("ParentId")
	f.mu.Lock()
	f.listed = append(f.listed, parent)
	f.mu.Unlock()

	items := f.favorites
	if parent != "" {
		items = f.children[parent]
	}
	json.NewEncoder(w).Encode(map[string]any{"Items": items, "TotalRecordCount": len(items)})
}

func (f *fakeJellyfin) download(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/Items/"), "/Download")

	f.mu.Lock()
	f.downloads = append(f.downloads, id)
	f.mu.Unlock()

	if f.failing[id] {
		http.Error(w, "transcoding failed", http.StatusInternalServerError)
		return
	}
	content, ok := f.files[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	io.WriteString(w, content)
}

func (f *fakeJellyfin) downloaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.downloads...)
}

func (f *fakeJellyfin) authorizationHeader() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authorization
}

func (f *fakeJellyfin) listCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.listed...)
}

type fakePrompter struct {
	username string
	password string
	asked    []string
}

func (p *fakePrompter) Username() (string, error) {
	p.asked = append(p.asked, "username")
	return p.username, nil
}

func (p *fakePrompter) Password() (string, error) {
	p.asked = append(p.asked, "password")
	return p.password, nil
}
