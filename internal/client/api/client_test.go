package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forensicvideo/console/internal/client/models"
	"github.com/forensicvideo/console/internal/client/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	return New(srv.URL, store, opts...), store
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.DashboardStats{})
	}))

	ctx := context.Background()

	_, err := c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth, "no token, request must go out unauthenticated")

	require.NoError(t, store.SetToken(ctx, "tok-1"))
	_, err = c.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_LoginPostsFormEncodedCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		// OAuth2 password flow: the email travels as "username".
		require.Equal(t, "admin@forensicvideo.com", r.PostForm.Get("username"))
		require.Equal(t, "admin123", r.PostForm.Get("password"))

		json.NewEncoder(w).Encode(models.AuthTokens{AccessToken: "tok-xyz", TokenType: "bearer"})
	}))

	tokens, err := c.Login(context.Background(), "admin@forensicvideo.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", tokens.AccessToken)
}

func TestClient_ValidationErrorCarriesDetail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail":"Incorrect email or password"}`)
	}))

	_, err := c.Login(context.Background(), "x@y.z", "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Incorrect email or password", apiErr.Detail)
}

func TestClient_Teardown401IsIdempotent(t *testing.T) {
	const inflight = 16

	release := make(chan struct{})
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))

	ctx := context.Background()
	require.NoError(t, store.SetToken(ctx, "expired-token"))

	var hookCalls atomic.Int32
	c.OnUnauthorized(func() { hookCalls.Add(1) })

	var wg sync.WaitGroup
	errs := make([]error, inflight)
	for i := 0; i < inflight; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Me(ctx)
		}(i)
	}
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.Equal(t, int32(1), hookCalls.Load(), "exactly one teardown for any number of in-flight 401s")
	assert.Equal(t, "", store.Token(ctx))
}

func TestClient_TeardownFiresAgainForNewSession(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	ctx := context.Background()
	var hookCalls atomic.Int32
	c.OnUnauthorized(func() { hookCalls.Add(1) })

	require.NoError(t, store.SetToken(ctx, "first"))
	_, err := c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, int32(1), hookCalls.Load())

	// A fresh login re-arms the teardown.
	require.NoError(t, store.SetToken(ctx, "second"))
	_, err = c.Me(ctx)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, int32(2), hookCalls.Load())
}

func TestClient_TimeoutMapsToUnavailable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}), WithTimeout(20*time.Millisecond))

	_, err := c.DashboardStats(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	store := session.NewMemoryStore()
	c := New("http://127.0.0.1:1", store, WithTimeout(time.Second))

	_, err := c.DashboardStats(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_UploadReportsProgress(t *testing.T) {
	payload := strings.Repeat("x", 1<<16)

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "evidence.mp4", hdr.Filename)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Len(t, data, len(payload))

		json.NewEncoder(w).Encode(models.VideoSummary{Filename: hdr.Filename, Status: models.StatusPending})
	}))

	var mu sync.Mutex
	var seen []int
	video, err := c.UploadVideo(context.Background(), "evidence.mp4",
		strings.NewReader(payload), int64(len(payload)),
		func(pct int) {
			mu.Lock()
			seen = append(seen, pct)
			mu.Unlock()
		})
	require.NoError(t, err)
	assert.Equal(t, "evidence.mp4", video.Filename)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, seen[i], seen[i-1], "progress must be monotonic")
	}
	assert.Equal(t, 100, seen[len(seen)-1])
}

func TestProgressReader_TracksRawFileBytes(t *testing.T) {
	payload := strings.Repeat("x", 200)
	var seen []int
	pr := &progressReader{
		r:          strings.NewReader(payload),
		total:      int64(len(payload)),
		onProgress: func(pct int) { seen = append(seen, pct) },
	}

	buf := make([]byte, 100)
	_, err := io.ReadFull(pr, buf)
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	// Halfway through the file means exactly 50%, with no framing overhead
	// inflating the count.
	assert.Equal(t, 50, seen[len(seen)-1])

	_, err = io.ReadFull(pr, buf)
	require.NoError(t, err)
	assert.Equal(t, 100, seen[len(seen)-1])
	for _, pct := range seen {
		assert.LessOrEqual(t, pct, 100)
	}
}

func TestClient_DownloadReportStreamsBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/download"))
		io.WriteString(w, "PDFDATA")
	}))

	var buf strings.Builder
	n, err := c.DownloadReport(context.Background(), uuid.New(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "PDFDATA", buf.String())
}
