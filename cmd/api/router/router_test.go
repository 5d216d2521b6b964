package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-blog-generator/cmd/api/auth"
	"ai-blog-generator/cmd/api/services"
	"ai-blog-generator/config"
	"ai-blog-generator/models"
)

type testServer struct {
	engine    *gin.Engine
	store     *memStore
	fetcher   *stubFetcher
	generator *stubGenerator
	pingErr   error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authCfg := config.AuthConfig{
		JWTSecret:  "test-secret",
		JWTIssuer:  "test",
		SessionTTL: time.Hour,
		CookieName: "sessionid",
	}
	jwtManager, err := auth.NewJWTManager(authCfg)
	require.NoError(t, err)

	ts := &testServer{
		store:     newMemStore(),
		fetcher:   &stubFetcher{text: "hello world"},
		generator: &stubGenerator{content: "- point one\n- point two"},
	}
	summaries := services.NewSummaryService(ts.fetcher, ts.generator, memSummaryRepo{ts.store})
	authSvc := services.NewAuthService(memUserRepo{ts.store}, memSessionRepo{ts.store}, jwtManager, 4)

	ts.engine, err = New(Deps{
		Summaries:     summaries,
		Auth:          authSvc,
		AuthCfg:       authCfg,
		StorageDriver: config.StorageMongo,
		Ping:          func(ctx context.Context) error { return ts.pingErr },
	})
	require.NoError(t, err)
	return ts
}

func (ts *testServer) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(req, cookie)
}

func (ts *testServer) postJSON(path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return ts.do(req, cookie)
}

// signup 은 새 계정을 만들고 세션 쿠키를 돌려준다.
func (ts *testServer) signup(t *testing.T, username string) *http.Cookie {
	t.Helper()
	w := ts.postForm("/signup", url.Values{
		"username":        {username},
		"email":           {username + "@example.com"},
		"password":        {"pw"},
		"repeat_password": {"pw"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == "sessionid" {
			return c
		}
	}
	t.Fatalf("signup did not set a session cookie")
	return nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestGenerateBlogValidation(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "alice")

	w := ts.do(httptest.NewRequest(http.MethodGet, "/generate-blog", nil), cookie)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "invalid request method", decodeError(t, w))

	w = ts.postJSON("/generate-blog", "{not json", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid JSON", decodeError(t, w))

	w = ts.postJSON("/generate-blog", `{"link":"https://youtube.com/watch?v=x"} garbage`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid JSON", decodeError(t, w))

	w = ts.postJSON("/generate-blog", `{"link":"https://youtube.com/watch?v=x"}{"link":"y"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid JSON", decodeError(t, w))

	w = ts.postJSON("/generate-blog", `{"url":"https://youtube.com/watch?v=x"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "link missing", decodeError(t, w))

	w = ts.postJSON("/generate-blog", `{"link":123}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "link missing", decodeError(t, w))

	w = ts.postJSON("/generate-blog", `{"link":"https://youtube.com/watch?v=x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication required", decodeError(t, w))

	assert.Empty(t, ts.store.summaries)
}

func TestGenerateBlogSuccess(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.signup(t, "alice")

	w := ts.postJSON("/generate-blog", `{"link":"https://youtube.com/watch?v=ABC123&t=5s"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "- point one\n- point two", body["content"])

	require.Len(t, ts.store.summaries, 1)
	assert.Equal(t, "user-alice", ts.store.summaries[0].UserID)
	assert.Equal(t, "https://youtube.com/watch?v=ABC123&t=5s", ts.store.summaries[0].YoutubeLink)
}

func TestGenerateBlogFailures(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(ts *testServer)
		wantMsg string
	}{
		{
			name:    "transcript",
			setup:   func(ts *testServer) { ts.fetcher.err = errors.New("no captions") },
			wantMsg: "transcription failed",
		},
		{
			name:    "generation",
			setup:   func(ts *testServer) { ts.generator.err = errors.New("quota exceeded") },
			wantMsg: "generation failed",
		},
		{
			name:    "save",
			setup:   func(ts *testServer) { ts.store.saveErr = errors.New("duplicate key") },
			wantMsg: "save failed: duplicate key",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			cookie := ts.signup(t, "alice")
			tc.setup(ts)

			w := ts.postJSON("/generate-blog", `{"link":"https://youtube.com/watch?v=x"}`, cookie)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tc.wantMsg, decodeError(t, w))
			assert.Empty(t, ts.store.summaries)
		})
	}
}

func TestPagesRequireLogin(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/blogs", "/blogs/sum-1"} {
		w := ts.do(httptest.NewRequest(http.MethodGet, path, nil), nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "authentication required", decodeError(t, w))
}

func TestBlogPagesEnforceOwnership(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	bob := ts.signup(t, "bob")

	ts.store.summaries = append(ts.store.summaries,
		models.Summary{ID: "sum-a", UserID: "user-alice", YoutubeLink: "https://youtube.com/watch?v=a", GeneratedContent: "alice secret"},
		models.Summary{ID: "sum-b", UserID: "user-bob", YoutubeLink: "https://youtube.com/watch?v=b", GeneratedContent: "bob secret"},
	)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/blogs", nil), alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/blogs/sum-a")
	assert.NotContains(t, w.Body.String(), "/blogs/sum-b")

	w = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/sum-a", nil), alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice secret")

	w = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/sum-a", nil), bob)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "alice secret")

	w = ts.do(httptest.NewRequest(http.MethodGet, "/blogs/missing", nil), bob)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/blogs/sum-a", nil), bob)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeError(t, w))

	w = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil), bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob secret")
	assert.NotContains(t, w.Body.String(), "alice secret")
}

func TestSignupErrors(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice")
	callsAfterFirst := ts.store.createCalls

	w := ts.postForm("/signup", url.Values{
		"username": {"carol"}, "email": {"c@example.com"}, "password": {"one"}, "repeat_password": {"two"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
	assert.Equal(t, callsAfterFirst, ts.store.createCalls)

	w = ts.postForm("/signup", url.Values{
		"username": {"alice"}, "email": {"new@example.com"}, "password": {"pw"}, "repeat_password": {"pw"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Username or email already exists")
	assert.Len(t, ts.store.users, 1)

	w = ts.postForm("/signup", url.Values{
		"username": {""}, "email": {"x@example.com"}, "password": {"pw"}, "repeat_password": {"pw"},
	}, nil)
	assert.Contains(t, w.Body.String(), "All fields are required")
}

func TestLoginAndLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice")

	w := ts.postForm("/login", url.Values{"username": {"alice"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	w = ts.postForm("/login", url.Values{"username": {"nobody"}, "password": {"pw"}}, nil)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	w = ts.postForm("/login", url.Values{"username": {"alice"}, "password": {"pw"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "sessionid" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	sessionsBefore := len(ts.store.sessions)
	w = ts.do(httptest.NewRequest(http.MethodPost, "/logout", nil), cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Len(t, ts.store.sessions, sessionsBefore-1)

	w = ts.do(httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginAndSignupPagesRender(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/login", "/signup"} {
		w := ts.do(httptest.NewRequest(http.MethodGet, path, nil), nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","storage":"mongo"}`, w.Body.String())

	ts.pingErr = errors.New("server selection timeout")
	w = ts.do(httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
