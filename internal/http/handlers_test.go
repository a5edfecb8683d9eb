package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sujalbistaa/folio/internal/auth"
	"github.com/sujalbistaa/folio/internal/config"
	"github.com/sujalbistaa/folio/internal/metrics"
	"github.com/sujalbistaa/folio/internal/models"
	"github.com/sujalbistaa/folio/internal/repository"
	"github.com/sujalbistaa/folio/internal/testutil"
	"github.com/sujalbistaa/folio/internal/upload"
	"github.com/sujalbistaa/folio/internal/ws"
)

type testApp struct {
	router *gin.Engine
	env    *Env
	store  *repository.Store
}

func newTestApp(t *testing.T, opts ...func(*Env)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.New(testutil.NewDB(t))
	cfg := &config.Config{
		SecretKey:  "test-secret",
		Env:        "test",
		StaticDir:  t.TempDir(),
		CORSOrigin: "*",
		SessionTTL: time.Hour,
	}
	hub := ws.NewHub(zap.NewNop())
	t.Cleanup(hub.Close)

	env := &Env{
		Config:  cfg,
		Store:   store,
		Auth:    auth.New(store, cfg.SecretKey, cfg.SessionTTL),
		Uploads: upload.New(cfg.UploadDir()),
		Hub:     hub,
		Metrics: metrics.New(),
		Log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(env)
	}

	router := gin.New()
	require.NoError(t, SetupRoutes(router, env))
	return &testApp{router: router, env: env, store: store}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req, cookies...)
}

// login bootstraps the default admin and returns its session cookie.
func (a *testApp) login(t *testing.T) *http.Cookie {
	t.Helper()
	_, err := a.env.Auth.EnsureAdmin(context.Background())
	require.NoError(t, err)

	w := a.postForm("/login", url.Values{
		"username": {auth.DefaultAdminUsername},
		"password": {auth.DefaultAdminPassword},
	})
	require.Equal(t, http.StatusFound, w.Code)
	c := findCookie(w, sessionCookie)
	require.NotNil(t, c, "session cookie")
	return c
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name && c.MaxAge >= 0 && c.Value != "" {
			return c
		}
	}
	return nil
}

func addPost(t *testing.T, store *repository.Store, title string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Title: title, Content: title + " body", DatePosted: at}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func multipartPost(t *testing.T, path string, fields map[string]string, fileName string, fileBody []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAdminRoutes_RedirectToLoginWithoutSession(t *testing.T) {
	app := newTestApp(t)
	post := addPost(t, app.store, "Keep me", time.Now())

	routes := []struct{ method, path string }{
		{http.MethodGet, "/admin"},
		{http.MethodPost, "/admin"},
		{http.MethodGet, "/logout"},
		{http.MethodGet, fmt.Sprintf("/delete/%d", post.ID)},
		{http.MethodPost, "/admin/project"},
		{http.MethodGet, "/admin/project/delete/1"},
		{http.MethodPost, "/admin/skill"},
		{http.MethodGet, "/admin/skill/delete/1"},
		{http.MethodGet, "/admin/comment/delete/1"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if r.method == http.MethodPost {
				w = app.postForm(r.path, url.Values{"title": {"sneaky"}, "name": {"sneaky"}})
			} else {
				w = app.get(r.path)
			}
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
			assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
		})
	}

	posts, err := app.store.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Keep me", posts[0].Title)

	projects, err := app.store.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	skills, err := app.store.ListSkills(context.Background())
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestLoginRedirect_ShowsNotice(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/admin")
	require.Equal(t, http.StatusFound, w.Code)
	flash := findCookie(w, flashCookie)
	require.NotNil(t, flash)

	page := app.get("/login", flash)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Please log in to access this page.")
}

func TestLogin_Success(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)

	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)

	w := app.get("/admin", session)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New post")

	// Logged-in visitors skip the form.
	w = app.get("/login", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestLogin_FailureRerendersForm(t *testing.T) {
	app := newTestApp(t)
	_, err := app.env.Auth.EnsureAdmin(context.Background())
	require.NoError(t, err)

	for _, form := range []url.Values{
		{"username": {"admin"}, "password": {"password124"}},
		{"username": {"nobody"}, "password": {"password123"}},
		{"username": {""}, "password": {""}},
	} {
		w := app.postForm("/login", form)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), loginFailed)
		assert.Nil(t, findCookie(w, sessionCookie))
	}
}

func TestLogout_EndsSession(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)

	w := app.get("/logout", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The old token no longer opens the admin page.
	w = app.get("/admin", session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSession_ForgedTokenRejected(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)

	forged := *session
	forged.Value = session.Value + "x"
	w := app.get("/admin", &forged)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestHome_ShowsSixNewestPosts(t *testing.T) {
	app := newTestApp(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 8; i++ {
		addPost(t, app.store, fmt.Sprintf("Entry %d", i), base.Add(time.Duration(i)*time.Hour))
	}

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for i := 3; i <= 8; i++ {
		assert.Contains(t, body, fmt.Sprintf("Entry %d", i))
	}
	assert.NotContains(t, body, "Entry 1")
	assert.NotContains(t, body, "Entry 2")
	assert.Less(t, strings.Index(body, "Entry 8"), strings.Index(body, "Entry 3"))
}

func TestHome_EmptyDatabase(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nothing published yet.")
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestBlog_ListsAllPosts(t *testing.T) {
	app := newTestApp(t)
	for i := 1; i <= 8; i++ {
		addPost(t, app.store, fmt.Sprintf("Entry %d", i), time.Now().Add(time.Duration(i)*time.Minute))
	}

	w := app.get("/blog")
	require.Equal(t, http.StatusOK, w.Code)
	for i := 1; i <= 8; i++ {
		assert.Contains(t, w.Body.String(), fmt.Sprintf("Entry %d", i))
	}
}

func TestCreatePost_ImageSources(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")
	tests := []struct {
		name       string
		imageURL   string
		fileName   string
		wantSource upload.Source
		want       func(t *testing.T, app *testApp, got *string)
	}{
		{
			name:       "no image",
			wantSource: upload.SourceNone,
			want: func(t *testing.T, _ *testApp, got *string) { assert.Nil(t, got) },
		},
		{
			name:       "external url",
			imageURL:   "https://example.com/cover.jpg",
			wantSource: upload.SourceURL,
			want: func(t *testing.T, _ *testApp, got *string) {
				require.NotNil(t, got)
				assert.Equal(t, "https://example.com/cover.jpg", *got)
			},
		},
		{
			name:       "uploaded png wins over url",
			imageURL:   "https://example.com/cover.jpg",
			fileName:   "My Cover.PNG",
			wantSource: upload.SourceFile,
			want: func(t *testing.T, app *testApp, got *string) {
				require.NotNil(t, got)
				assert.Equal(t, upload.URLPrefix+"My_Cover.PNG", *got)
				data, err := os.ReadFile(filepath.Join(app.env.Config.UploadDir(), "My_Cover.PNG"))
				require.NoError(t, err)
				assert.Equal(t, png, data)
			},
		},
		{
			name:       "disallowed extension is ignored",
			fileName:   "payload.exe",
			wantSource: upload.SourceNone,
			want: func(t *testing.T, app *testApp, got *string) {
				assert.Nil(t, got)
				entries, _ := os.ReadDir(app.env.Config.UploadDir())
				assert.Empty(t, entries)
			},
		},
		{
			name:       "disallowed extension falls back to url",
			imageURL:   "https://example.com/cover.jpg",
			fileName:   "payload.exe",
			wantSource: upload.SourceURL,
			want: func(t *testing.T, _ *testApp, got *string) {
				require.NotNil(t, got)
				assert.Equal(t, "https://example.com/cover.jpg", *got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			session := app.login(t)

			req := multipartPost(t, "/admin", map[string]string{
				"title":      "Hello",
				"content":    "World",
				"image_file": tt.imageURL,
			}, tt.fileName, png)
			w := app.do(req, session)
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/admin", w.Header().Get("Location"))

			posts, err := app.store.ListPosts(context.Background())
			require.NoError(t, err)
			require.Len(t, posts, 1)
			assert.Equal(t, "Hello", posts[0].Title)
			assert.False(t, posts[0].DatePosted.IsZero())
			tt.want(t, app, posts[0].ImageFile)
			assert.Equal(t, 1.0, promtestutil.ToFloat64(app.env.Metrics.Uploads.WithLabelValues(string(tt.wantSource))))
		})
	}
}

func TestCreatePost_StoreFailureRemovesUpload(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)
	require.NoError(t, app.store.DB().Migrator().DropTable(&models.Comment{}, &models.Post{}))

	req := multipartPost(t, "/admin", map[string]string{"title": "T", "content": "C"}, "cover.png", []byte("png"))
	w := app.do(req, session)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries, err := os.ReadDir(app.env.Config.UploadDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, 0.0, promtestutil.ToFloat64(app.env.Metrics.Uploads.WithLabelValues(string(upload.SourceFile))))
}

func TestCreatePost_FlashesNotice(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)

	w := app.do(multipartPost(t, "/admin", map[string]string{"title": "T", "content": "C"}, "", nil), session)
	require.Equal(t, http.StatusFound, w.Code)
	flash := findCookie(w, flashCookie)
	require.NotNil(t, flash)

	page := app.get("/admin", session, flash)
	assert.Contains(t, page.Body.String(), "Post published!")
}

func TestDeletePost_RemovesComments(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)
	ctx := context.Background()

	post := addPost(t, app.store, "Doomed", time.Now())
	for i := 0; i < 3; i++ {
		require.NoError(t, app.store.CreateComment(ctx, &models.Comment{Username: "v", Content: "c", PostID: post.ID}))
	}

	w := app.get(fmt.Sprintf("/delete/%d", post.ID), session)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	_, err := app.store.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	comments, err := app.store.CommentsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	w = app.get(fmt.Sprintf("/delete/%d", post.ID), session)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectsAndSkills_CreateAndDelete(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)
	ctx := context.Background()

	w := app.postForm("/admin/project", url.Values{
		"title":       {"Folio"},
		"description": {"This site"},
		"github_link": {""},
		"category":    {"Web"},
		"tags":        {"Go, Gin"},
	}, session)
	require.Equal(t, http.StatusFound, w.Code)

	projects, err := app.store.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Nil(t, projects[0].Link, "absent field stores NULL")
	require.NotNil(t, projects[0].GithubLink, "empty field stores empty string")
	assert.Equal(t, "", *projects[0].GithubLink)
	assert.Equal(t, []string{"Go", "Gin"}, projects[0].TagList())

	w = app.postForm("/admin/skill", url.Values{
		"name":     {"Go"},
		"icon":     {"fa-brands fa-golang"},
		"category": {"Backend"},
	}, session)
	require.Equal(t, http.StatusFound, w.Code)

	skills, err := app.store.ListSkills(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 1)

	home := app.get("/")
	assert.Contains(t, home.Body.String(), "This site")
	assert.Contains(t, home.Body.String(), "fa-brands fa-golang")

	w = app.get(fmt.Sprintf("/admin/project/delete/%d", projects[0].ID), session)
	assert.Equal(t, http.StatusFound, w.Code)
	w = app.get(fmt.Sprintf("/admin/skill/delete/%d", skills[0].ID), session)
	assert.Equal(t, http.StatusFound, w.Code)

	projects, err = app.store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
	skills, err = app.store.ListSkills(ctx)
	require.NoError(t, err)
	assert.Empty(t, skills)

	assert.Equal(t, http.StatusNotFound, app.get("/admin/project/delete/999", session).Code)
	assert.Equal(t, http.StatusNotFound, app.get("/admin/skill/delete/999", session).Code)
}

func TestCreateAdmin_OnlyOnce(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/create_admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin user created! (username: admin, password: password123)", w.Body.String())

	w = app.get("/create_admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin already exists.", w.Body.String())

	n, err := app.store.CountUsersNamed(context.Background(), "admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAddComment(t *testing.T) {
	app := newTestApp(t)
	post := addPost(t, app.store, "Open thread", time.Now())
	path := fmt.Sprintf("/post/%d", post.ID)

	w := app.postForm(path, url.Values{"username": {"Ayşe"}, "content": {"Nice <b>post</b>"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, path, w.Header().Get("Location"))
	flash := findCookie(w, flashCookie)
	require.NotNil(t, flash)

	page := app.get(path, flash)
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Your comment has been posted!")
	assert.Contains(t, body, "Ayşe")
	assert.Contains(t, body, "Nice &lt;b&gt;post&lt;/b&gt;")

	// The notice is shown once.
	again := app.get(path)
	assert.NotContains(t, again.Body.String(), "Your comment has been posted!")

	comments, err := app.store.CommentsForPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.False(t, comments[0].DatePosted.IsZero())
}

func TestAddComment_UnknownPost(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/post/42", url.Values{"username": {"x"}, "content": {"y"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	comments, err := app.store.RecentComments(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteComment(t *testing.T) {
	app := newTestApp(t)
	session := app.login(t)
	ctx := context.Background()

	post := addPost(t, app.store, "Thread", time.Now())
	comment := &models.Comment{Username: "spam", Content: "buy now", PostID: post.ID}
	require.NoError(t, app.store.CreateComment(ctx, comment))

	admin := app.get("/admin", session)
	assert.Contains(t, admin.Body.String(), "buy now")

	w := app.get(fmt.Sprintf("/admin/comment/delete/%d", comment.ID), session)
	assert.Equal(t, http.StatusFound, w.Code)

	comments, err := app.store.CommentsForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/post/999", "/post/abc", "/post/0", "/no-such-page"} {
		w := app.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "404", path)
	}
}

func TestCommentRateLimit(t *testing.T) {
	app := newTestApp(t, func(e *Env) { e.CommentLimiter = NewIPRateLimiter(1, 2) })
	post := addPost(t, app.store, "Busy", time.Now())
	path := fmt.Sprintf("/post/%d", post.ID)
	form := url.Values{"username": {"a"}, "content": {"b"}}

	assert.Equal(t, http.StatusFound, app.postForm(path, form).Code)
	assert.Equal(t, http.StatusFound, app.postForm(path, form).Code)
	assert.Equal(t, http.StatusTooManyRequests, app.postForm(path, form).Code)

	// Reading is never limited.
	assert.Equal(t, http.StatusOK, app.get(path).Code)

	comments, err := app.store.CommentsForPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestCommentRateLimit_IgnoresSpoofedForwardedFor(t *testing.T) {
	app := newTestApp(t, func(e *Env) { e.CommentLimiter = NewIPRateLimiter(1, 1) })
	post := addPost(t, app.store, "Busy", time.Now())
	path := fmt.Sprintf("/post/%d", post.ID)

	var codes []int
	for i := 0; i < 5; i++ {
		form := url.Values{"username": {"a"}, "content": {"b"}}
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i+1))
		codes = append(codes, app.do(req).Code)
	}
	assert.Equal(t, []int{
		http.StatusFound,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
	}, codes)

	comments, err := app.store.CommentsForPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestCommentRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	// httptest requests arrive from 192.0.2.1.
	app := newTestApp(t, func(e *Env) {
		e.Config.TrustedProxies = []string{"192.0.2.1"}
		e.CommentLimiter = NewIPRateLimiter(1, 1)
	})
	post := addPost(t, app.store, "Busy", time.Now())
	path := fmt.Sprintf("/post/%d", post.ID)

	send := func(client string) int {
		form := url.Values{"username": {"a"}, "content": {"b"}}
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-Forwarded-For", client)
		return app.do(req).Code
	}

	assert.Equal(t, http.StatusFound, send("203.0.113.1"))
	assert.Equal(t, http.StatusFound, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
}

func TestSetupRoutes_RejectsInvalidTrustedProxy(t *testing.T) {
	app := newTestApp(t)
	app.env.Config.TrustedProxies = []string{"not-an-ip"}

	assert.Error(t, SetupRoutes(gin.New(), app.env))
}

func TestAPI_Listings(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	addPost(t, app.store, "Public", time.Now())
	require.NoError(t, app.store.CreateSkill(ctx, &models.Skill{Name: "Go", Icon: "fa-brands fa-golang", Category: "Backend"}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "https://example.com")
	w := app.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var posts []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Public", posts[0]["title"])

	var skills []models.Skill
	w = app.get("/api/skills")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skills))
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)

	var projects []models.Project
	w = app.get("/api/projects")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Empty(t, projects)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.get("/")

	w := app.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "folio_http_requests_total")
}
