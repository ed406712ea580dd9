package rwgps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New("test-api-key",
		WithBaseURL(server.URL),
		WithAuthToken("test-token"),
		WithPageInterval(time.Millisecond))
	return client, server
}

func tripsPage(ids []int64, pageCount, recordCount int) string {
	trips := make([]string, 0, len(ids))
	for _, id := range ids {
		trips = append(trips, fmt.Sprintf(`{"id":%d,"distance":16000,"created_at":"2024-05-01T08:00:00Z"}`, id))
	}
	var body string
	for i, tr := range trips {
		if i > 0 {
			body += ","
		}
		body += tr
	}
	return fmt.Sprintf(`{"trips":[%s],"meta":{"pagination":{"page_count":%d,"record_count":%d}}}`,
		body, pageCount, recordCount)
}

func TestAuthenticate(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth_tokens.json", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-rwgps-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req authRequest
		require.NoError(t, sonic.Unmarshal(body, &req))
		assert.Equal(t, "rider@example.com", req.User.Email)
		assert.Equal(t, "hunter2", req.User.Password)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"auth_token":{"auth_token":"fresh-token"}}`)
	})
	client, _ := newTestClient(t, handler)

	token, err := client.Authenticate(context.Background(), "rider@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "fresh-token", client.authToken)
}

func TestAuthenticateRejected(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, _ := newTestClient(t, handler)

	_, err := client.Authenticate(context.Background(), "rider@example.com", "wrong")
	require.Error(t, err)
	// 401 is permanent: no retries.
	assert.Equal(t, int32(1), calls.Load())
}

func TestAuthenticateMalformedResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"auth_token":{}}`)
	})
	client, _ := newTestClient(t, handler)

	_, err := client.Authenticate(context.Background(), "rider@example.com", "hunter2")
	assert.Error(t, err)
}

func TestLatest(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips.json", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		assert.Equal(t, "2", r.URL.Query().Get("version"))
		assert.Equal(t, "test-token", r.Header.Get("x-rwgps-auth-token"))
		fmt.Fprint(w, tripsPage([]int64{42}, 1, 1))
	})
	client, _ := newTestClient(t, handler)

	latest, err := client.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(42), latest.ID)
}

func TestLatestEmptyAccount(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, tripsPage(nil, 0, 0))
	})
	client, _ := newTestClient(t, handler)

	latest, err := client.Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		fmt.Fprint(w, tripsPage([]int64{12, 11}, 5, 230))
	})
	client, _ := newTestClient(t, handler)

	trips, err := client.Page(context.Background(), 3, 50)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, int64(12), trips[0].ID)
}

func TestAll(t *testing.T) {
	pages := map[string]string{
		"1": tripsPage([]int64{6, 5, 4}, 2, 5),
		"2": tripsPage([]int64{3, 2}, 2, 5),
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Query().Get("page")]
		require.True(t, ok, "unexpected page %s", r.URL.Query().Get("page"))
		fmt.Fprint(w, body)
	})
	client, _ := newTestClient(t, handler)

	var reports [][2]int
	trips, err := client.All(context.Background(), func(done, total int) {
		reports = append(reports, [2]int{done, total})
	})
	require.NoError(t, err)

	assert.Len(t, trips, 5)
	assert.Equal(t, [][2]int{{3, 5}, {5, 5}}, reports)
}

func TestRetryTransientFailure(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, tripsPage([]int64{1}, 1, 1))
	})
	client, _ := newTestClient(t, handler)

	trips, err := client.Page(context.Background(), 1, 50)
	require.NoError(t, err)
	assert.Len(t, trips, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestPermanentFailureDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	client, _ := newTestClient(t, handler)

	_, err := client.Page(context.Background(), 1, 50)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
