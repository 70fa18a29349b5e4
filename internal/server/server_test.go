package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikurao/portfolio/internal/config"
	"github.com/karthikurao/portfolio/internal/contact"
	"github.com/karthikurao/portfolio/internal/content"
	"github.com/karthikurao/portfolio/internal/scrollspy"
	"github.com/karthikurao/portfolio/internal/sections"
	"github.com/karthikurao/portfolio/internal/store"
)

type stubSender struct {
	err  error
	sent []contact.Submission
}

func (s *stubSender) Send(_ context.Context, sub contact.Submission) error {
	s.sent = append(s.sent, sub)
	return s.err
}

type fixture struct {
	srv    *Server
	store  *store.Store
	sender *stubSender
}

func newFixture(t *testing.T, admin bool) *fixture {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	c, err := content.Load("")
	require.NoError(t, err)

	cfg := config.Config{Port: "0", Mode: "test", ScrollSpy: scrollspy.DefaultOptions()}
	if admin {
		cfg.AdminUsername, cfg.AdminPassword = "karthik", "s3cret-pass"
	}
	sender := &stubSender{}
	srv, err := New(Deps{
		Config:   cfg,
		Registry: sections.Default(),
		Content:  c,
		Store:    st,
		Contact:  contact.NewService(sender, st),
	})
	require.NoError(t, err)
	t.Cleanup(srv.Wait)
	return &fixture{srv: srv, store: st, sender: sender}
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestIndexHighlightsFirstSection(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `href="/#home" data-section="home" class="nav-link active"`)
	assert.Contains(t, body, `href="/#about" data-section="about" class="nav-link"`)
	assert.Contains(t, body, `href="/resume" data-section="resume"`)
	assert.Contains(t, body, `id="projects"`)
	assert.NotContains(t, body, `id="resume"`)
	assert.Contains(t, body, "<strong>full-stack developer</strong>")
}

func TestSectionPagesUseRouteHighlight(t *testing.T) {
	f := newFixture(t, false)
	for _, id := range []string{"about", "projects", "skills", "resume", "contact"} {
		w := f.do(httptest.NewRequest(http.MethodGet, "/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code, id)
		body := w.Body.String()
		assert.Contains(t, body, `data-section="`+id+`" class="nav-link active"`, id)
		assert.Contains(t, body, `id="`+id+`"`, id)
		assert.Equal(t, 1, strings.Count(body, "nav-link active"), id)
	}

	w := f.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "nav-link active")
}

func TestStaticAssets(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".nav-link.active")
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestContactSuccess(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(postForm("/contact", url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"message": {"I would love to work together on something."},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Message Sent!")
	require.Len(t, f.sender.sent, 1)

	msgs, err := f.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Delivered)
	assert.Equal(t, f.sender.sent[0].ID, msgs[0].ID)
}

func TestContactValidation(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(postForm("/contact", url.Values{
		"name":    {"A"},
		"email":   {"nope"},
		"message": {"short"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Name must be at least 2 characters.")
	assert.Contains(t, body, "Please enter a valid email.")
	assert.Contains(t, body, "Message must be at least 10 characters.")
	assert.Empty(t, f.sender.sent)

	w = f.do(postForm("/contact", url.Values{
		"name":    {"   A   "},
		"email":   {"ada@example.com"},
		"message": {"Long enough message here"},
	}))
	assert.Contains(t, w.Body.String(), "Name must be at least 2 characters.")
	assert.Empty(t, f.sender.sent)
}

func TestContactDeliveryFailure(t *testing.T) {
	f := newFixture(t, false)
	f.sender.err = errors.New("relay down")
	w := f.do(postForm("/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Is anybody out there?"},
	}))
	assert.Contains(t, w.Body.String(), "There was a problem sending your message.")

	msgs, err := f.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Delivered)
}

func postJSON(path string, v any) *http.Request {
	b, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(b)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestResolveEndpoint(t *testing.T) {
	f := newFixture(t, false)
	extents := []scrollspy.Extent{
		{ID: "home", Top: 0, Bottom: 800},
		{ID: "about", Top: 800, Bottom: 1600},
		{ID: "projects", Top: 1600, Bottom: 2400},
	}

	w := f.do(postJSON("/api/scrollspy/resolve", scrollspy.Query{
		Viewport: scrollspy.Viewport{Height: 800, ScrollY: 900},
		Extents:  extents,
	}))
	require.Equal(t, http.StatusOK, w.Code)
	var res scrollspy.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "about", res.Active)
	assert.True(t, res.Changed)

	w = f.do(postJSON("/api/scrollspy/resolve", scrollspy.Query{Path: "/projects", Extents: extents}))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "projects", res.Active)
	assert.True(t, res.ByRoute)

	req := httptest.NewRequest(http.MethodPost, "/api/scrollspy/resolve", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, f.do(req).Code)
}

func TestNavActiveRecordsSectionViews(t *testing.T) {
	f := newFixture(t, false)

	assert.Equal(t, http.StatusNoContent, f.do(postJSON("/api/nav/active", obj{"section": "about"})).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(postJSON("/api/nav/active", obj{"section": "blog"})).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(postJSON("/api/nav/active", obj{})).Code)

	dnt := postJSON("/api/nav/active", obj{"section": "projects"})
	dnt.Header.Set("DNT", "1")
	assert.Equal(t, http.StatusNoContent, f.do(dnt).Code)

	views, err := f.store.SectionViews(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []store.SectionView{{SectionID: "about", Views: 1, Visitors: 1}}, views)
}

type obj = map[string]any

func TestSectionsEndpoint(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(httptest.NewRequest(http.MethodGet, "/api/sections", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sections []sections.Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Sections, sections.Default().Len())
}

func TestVisitorTracking(t *testing.T) {
	f := newFixture(t, false)
	f.do(httptest.NewRequest(http.MethodGet, "/", nil))
	f.do(httptest.NewRequest(http.MethodGet, "/about", nil))
	f.do(httptest.NewRequest(http.MethodGet, "/static/site.css", nil))

	dnt := httptest.NewRequest(http.MethodGet, "/skills", nil)
	dnt.Header.Set("DNT", "1")
	f.do(dnt)
	f.srv.Wait()

	visitors, err := f.store.RecentVisitors(context.Background(), 10)
	require.NoError(t, err)
	var paths []string
	for _, v := range visitors {
		paths = append(paths, v.Path)
		assert.NotContains(t, v.HashedIP, "192.0.2.1")
	}
	assert.ElementsMatch(t, []string{"/", "/about"}, paths)
}

func TestAdminDisabledWithoutCredentials(t *testing.T) {
	f := newFixture(t, false)
	assert.Equal(t, http.StatusNotFound, f.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil)).Code)
}

func login(t *testing.T, f *fixture) *http.Cookie {
	t.Helper()
	w := f.do(postForm("/admin/login", url.Values{"username": {"karthik"}, "password": {"s3cret-pass"}}))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("no admin cookie")
	return nil
}

func TestAdminFlow(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = f.do(postForm("/admin/login", url.Values{"username": {"karthik"}, "password": {"wrong"}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	cookie := login(t, f)
	require.NoError(t, f.store.RecordSectionView(context.Background(), "1.2.3.4", "skills"))
	require.NoError(t, f.store.SaveMessage(context.Background(), contact.Submission{ID: "abc", Name: "N", Email: "e@x.io", Message: "hello world!"}, true))

	authed := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.AddCookie(cookie)
		return f.do(req)
	}

	w = authed(http.MethodGet, "/admin/dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<td>skills</td>")

	w = authed(http.MethodGet, "/admin/messages")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello world!")

	assert.Equal(t, http.StatusOK, authed(http.MethodGet, "/admin/visitors").Code)

	w = authed(http.MethodGet, "/admin/api/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var stats store.AdminStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.TotalMessages)

	w = authed(http.MethodGet, "/admin/export/stats")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")

	assert.Equal(t, http.StatusOK, authed(http.MethodDelete, "/admin/messages/abc").Code)
	assert.Equal(t, http.StatusNotFound, authed(http.MethodDelete, "/admin/messages/abc").Code)
	assert.Equal(t, http.StatusOK, authed(http.MethodPost, "/admin/privacy/cleanup").Code)

	w = authed(http.MethodGet, "/admin/logout")
	assert.Equal(t, http.StatusFound, w.Code)
}
