package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/pkg/logger"
	"github.com/stretchr/testify/require"
)

// testEnv bundles the collaborators shared by handler tests
type testEnv struct {
	menu     *service.MenuService
	renderer *view.Renderer
	sessions *session.Store
	log      *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	renderer, err := view.NewRenderer("$")
	require.NoError(t, err)
	menu := service.NewMenuService(repository.NewInMemoryMenuRepository())

	return &testEnv{
		menu:     menu,
		renderer: renderer,
		sessions: session.NewStore(time.Hour, session.NewFactory(menu, renderer)),
		log:      logger.New("error"),
	}
}

// newSessionRequest builds a request that already carries a fresh session
func (e *testEnv) newSessionRequest(t *testing.T, method, target string, body io.Reader) (*http.Request, *session.Session) {
	t.Helper()

	sess, err := e.sessions.Create(context.Background())
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithSession(req.Context(), sess)), sess
}

// withSession attaches an existing session to a request
func withSession(req *http.Request, sess *session.Session) *http.Request {
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

// newTestServer serves the full router and returns a cookie-keeping client
func (e *testEnv) newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	srv := httptest.NewServer(NewRouter(RouterDeps{
		Menu:           e.menu,
		Renderer:       e.renderer,
		Sessions:       e.sessions,
		Logger:         e.log,
		AllowedOrigins: []string{"*"},
	}))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return srv, &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func postForm(t *testing.T, client *http.Client, u string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(u, form)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return readBody(t, resp)
}
