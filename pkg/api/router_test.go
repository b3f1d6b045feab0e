package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"newtab-go/pkg/api/middleware"
	"newtab-go/pkg/config"
	"newtab-go/pkg/models"
	"newtab-go/pkg/storage"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	key    string
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = "memory"
	for _, m := range mutate {
		m(cfg)
	}

	s := &testServer{t: t, router: NewRouter(storage.NewMemory(), cfg, nil)}

	w := s.do(http.MethodPost, "/api/v1/profiles", `{"name":"laptop"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create profile: %d %s", w.Code, w.Body)
	}
	var p models.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	s.key = p.APIKey
	return s
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if s.key != "" {
		req.Header.Set("Authorization", "Bearer "+s.key)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) form(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.KeyCookie, Value: s.key})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) list() models.ShortcutList {
	s.t.Helper()
	w := s.do(http.MethodGet, "/api/v1/shortcuts", "")
	if w.Code != http.StatusOK {
		s.t.Fatalf("list: %d %s", w.Code, w.Body)
	}
	var list models.ShortcutList
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		s.t.Fatal(err)
	}
	return list
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
}

func TestShortcutsRequireAuth(t *testing.T) {
	s := newTestServer(t)
	s.key = ""
	if w := s.do(http.MethodGet, "/api/v1/shortcuts", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no key = %d", w.Code)
	}
	s.key = "wrong"
	if w := s.do(http.MethodGet, "/api/v1/shortcuts", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad key = %d", w.Code)
	}
}

func TestShortcutLifecycle(t *testing.T) {
	s := newTestServer(t)

	list := s.list()
	if list.Amount != 6 || list.Shortcuts[5].Name != "Twitter" {
		t.Fatalf("initial list = %+v", list)
	}

	w := s.do(http.MethodPost, "/api/v1/shortcuts", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body)
	}

	w = s.do(http.MethodPut, "/api/v1/shortcuts/6", `{"name":"Go","url":"go.dev"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d %s", w.Code, w.Body)
	}
	var view models.ShortcutView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.URL != "https://go.dev" || view.Icon.Kind != "remote" {
		t.Fatalf("updated view = %+v", view)
	}

	if w := s.do(http.MethodDelete, "/api/v1/shortcuts/0", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d %s", w.Code, w.Body)
	}
	list = s.list()
	if list.Amount != 6 || list.Shortcuts[5].Name != "Go" || list.Shortcuts[5].Index != 5 {
		t.Fatalf("after delete = %+v", list.Shortcuts)
	}

	w = s.do(http.MethodGet, "/api/v1/shortcuts/0/icon", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"kind":"preset"`) {
		t.Fatalf("icon = %d %s", w.Code, w.Body)
	}

	if w := s.do(http.MethodPost, "/api/v1/shortcuts/reset", ""); w.Code != http.StatusOK {
		t.Fatalf("reset = %d", w.Code)
	}
	list = s.list()
	if list.Amount != 6 || list.Shortcuts[0].Name != "Youtube" {
		t.Fatalf("after reset = %+v", list.Shortcuts)
	}
}

func TestShortcutErrors(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(http.MethodPut, "/api/v1/shortcuts/abc", `{"name":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("bad index = %d", w.Code)
	}
	if w := s.do(http.MethodPut, "/api/v1/shortcuts/42", `{"name":"x"}`); w.Code != http.StatusNotFound {
		t.Fatalf("out of range = %d", w.Code)
	}

	for i := 0; i < 5; i++ {
		if w := s.do(http.MethodDelete, "/api/v1/shortcuts/0", ""); w.Code != http.StatusNoContent {
			t.Fatalf("delete %d = %d", i, w.Code)
		}
	}
	if w := s.do(http.MethodDelete, "/api/v1/shortcuts/0", ""); w.Code != http.StatusConflict {
		t.Fatalf("delete last = %d", w.Code)
	}
	if list := s.list(); list.Amount != 1 || list.CanDelete {
		t.Fatalf("after min = %+v", list)
	}
}

func TestCreateAtMaximumConflicts(t *testing.T) {
	s := newTestServer(t)
	for i := 6; i < 50; i++ {
		if w := s.do(http.MethodPost, "/api/v1/shortcuts", ""); w.Code != http.StatusCreated {
			t.Fatalf("create %d = %d", i, w.Code)
		}
	}
	if w := s.do(http.MethodPost, "/api/v1/shortcuts", ""); w.Code != http.StatusConflict {
		t.Fatalf("create past max = %d", w.Code)
	}
	if list := s.list(); list.Amount != 50 || list.CanCreate {
		t.Fatalf("at max = amount %d can_create %v", list.Amount, list.CanCreate)
	}
}

func TestPreferencesAPI(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/v1/preferences", `{"show_shortcuts":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d %s", w.Code, w.Body)
	}
	w = s.do(http.MethodGet, "/api/v1/preferences", "")
	var prefs models.Preferences
	if err := json.Unmarshal(w.Body.Bytes(), &prefs); err != nil {
		t.Fatal(err)
	}
	if prefs.ShowShortcuts || prefs.AdaptiveIcons {
		t.Fatalf("prefs = %+v", prefs)
	}
}

func TestCurrentProfile(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/v1/profiles/me", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"laptop"`) {
		t.Fatalf("me = %d %s", w.Code, w.Body)
	}
	if w := s.do(http.MethodPost, "/api/v1/profiles", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing name = %d", w.Code)
	}
}

func TestPageRendersTilesAndSettings(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/?key="+s.key, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("page = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`href="https://youtube.com"`,
		`action="/shortcuts/5"`,
		`<svg`,
		`New shortcut`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), middleware.KeyCookie+"=") {
		t.Fatal("?key= did not set the profile cookie")
	}
}

func TestPageWelcomeWithoutProfile(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `action="/profiles"`) {
		t.Fatalf("welcome = %d %s", w.Code, w.Body)
	}

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/shortcuts", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("anonymous form = %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestPageRegisterSetsCookie(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/profiles", strings.NewReader("name=desktop"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("register = %d %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), middleware.KeyCookie+"=") {
		t.Fatal("register did not set the profile cookie")
	}
}

func TestPageForms(t *testing.T) {
	s := newTestServer(t)

	w := s.form("/shortcuts/1", url.Values{"name": {"Mail"}, "url": {"mail.example.org"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("commit = %d %s", w.Code, w.Body)
	}
	if sc := s.list().Shortcuts[1]; sc.Name != "Mail" || sc.URL != "https://mail.example.org" {
		t.Fatalf("committed = %+v", sc)
	}

	if w := s.form("/shortcuts", nil); w.Code != http.StatusSeeOther {
		t.Fatalf("create = %d", w.Code)
	}
	if w := s.form("/shortcuts/0/delete", nil); w.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d", w.Code)
	}
	list := s.list()
	if list.Amount != 6 || list.Shortcuts[0].Name != "Mail" {
		t.Fatalf("after forms = %+v", list.Shortcuts)
	}

	// unchecked boxes are simply absent
	if w := s.form("/preferences", url.Values{"adaptive_icons": {"checked"}}); w.Code != http.StatusSeeOther {
		t.Fatalf("preferences = %d", w.Code)
	}
	w = s.do(http.MethodGet, "/api/v1/preferences", "")
	if !strings.Contains(w.Body.String(), `"show_shortcuts":false`) || !strings.Contains(w.Body.String(), `"adaptive_icons":true`) {
		t.Fatalf("preferences = %s", w.Body)
	}

	if w := s.form("/shortcuts/reset", nil); w.Code != http.StatusSeeOther {
		t.Fatalf("reset = %d", w.Code)
	}
	if list := s.list(); list.Shortcuts[0].Name != "Youtube" {
		t.Fatalf("after reset = %+v", list.Shortcuts[0])
	}
}

func TestStaticIcons(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/static/icons/offline.svg", "/static/icons/github-shortcut.svg"} {
		if w := s.do(http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Errorf("%s = %d", path, w.Code)
		}
	}
}

func TestFaviconProxyFallsBackToOffline(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Icons.Proxy = true
		cfg.Icons.FaviconURL = "http://127.0.0.1:1/{host}"
		cfg.Icons.FetchTimeout = 1
	})

	w := s.do(http.MethodGet, "/icons/favicon/go.dev", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/static/icons/offline.svg" {
		t.Fatalf("proxy = %d %q", w.Code, w.Header().Get("Location"))
	}

	list := s.list()
	if list.Shortcuts[0].Icon.Kind != "preset" {
		t.Fatalf("preset icon changed: %+v", list.Shortcuts[0].Icon)
	}
	s.do(http.MethodPut, "/api/v1/shortcuts/0", `{"name":"Go","url":"go.dev"}`)
	if src := s.list().Shortcuts[0].Icon.Src; src != "/icons/favicon/go.dev" {
		t.Fatalf("proxied src = %q", src)
	}
}

func TestFaviconProxyRequiresProfile(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Icons.Proxy = true
	})

	req := httptest.NewRequest(http.MethodGet, "/icons/favicon/go.dev", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("anonymous proxy = %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestFaviconProxyServesOnlyRasterImages(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("domain") {
		case "evil.example":
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>fetch('/api/v1/shortcuts')</script></svg>`))
		default:
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("\x89PNG\r\n\x1a\n0000"))
		}
	}))
	defer upstream.Close()

	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Icons.Proxy = true
		cfg.Icons.FaviconURL = upstream.URL + "/?domain={host}"
	})

	w := s.do(http.MethodGet, "/icons/favicon/evil.example", "")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/static/icons/offline.svg" {
		t.Fatalf("svg proxied: %d %q %q", w.Code, w.Header().Get("Content-Type"), w.Body)
	}

	for _, host := range []string{"127.0.0.1:8080", "localhost", "10.0.0.1"} {
		w = s.do(http.MethodGet, "/icons/favicon/"+host, "")
		if w.Code != http.StatusFound {
			t.Fatalf("%s proxied: %d", host, w.Code)
		}
	}

	w = s.do(http.MethodGet, "/icons/favicon/go.dev", "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("png = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff")
	}
	if !strings.HasPrefix(w.Header().Get("Content-Security-Policy"), "default-src 'none'") {
		t.Fatalf("csp = %q", w.Header().Get("Content-Security-Policy"))
	}
}
