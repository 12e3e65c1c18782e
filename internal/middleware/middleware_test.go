package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
)

type ping struct{}

func call(t *testing.T, interceptor connect.UnaryInterceptorFunc, header string, next connect.UnaryFunc) error {
	t.Helper()

	req := connect.NewRequest(&ping{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	_, err := interceptor(next)(context.Background(), req)
	return err
}

func okHandler(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
	return connect.NewResponse(&ping{}), nil
}

func TestRequireAuth(t *testing.T) {
	jwtManager, err := auth.NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	user := models.NewUser("alice@example.com", "Alice", "hash")
	token, err := jwtManager.Generate(user)
	require.NoError(t, err)

	t.Run("valid token sets identity", func(t *testing.T) {
		var gotUser, gotEmail string
		err := call(t, RequireAuth(jwtManager), "Bearer "+token, func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
			gotUser, gotEmail = GetUserID(ctx), GetEmail(ctx)
			return nil, nil
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, gotUser)
		assert.Equal(t, user.Email, gotEmail)
	})

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", auth.ErrMissingToken},
		{"wrong scheme", "Basic " + token, auth.ErrInvalidToken},
		{"empty token", "Bearer ", auth.ErrInvalidToken},
		{"bad token", "Bearer nope", auth.ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := call(t, RequireAuth(jwtManager), tt.header, okHandler)
			require.Error(t, err)
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("public procedures skip the check", func(t *testing.T) {
		// Requests built outside a handler have an empty procedure.
		err := call(t, RequireAuth(jwtManager, ""), "", okHandler)
		assert.NoError(t, err)
	})
}

func TestBearerTokenCaseInsensitiveScheme(t *testing.T) {
	token, err := bearerToken("bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestTimeoutInterceptor(t *testing.T) {
	var deadline time.Time
	var hasDeadline bool
	err := call(t, TimeoutInterceptor(time.Minute), "", func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		deadline, hasDeadline = ctx.Deadline()
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	err = call(t, TimeoutInterceptor(0), "", func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
		_, hasDeadline = ctx.Deadline()
		return nil, nil
	})
	require.NoError(t, err)
	assert.False(t, hasDeadline)
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New()
	interceptor := MetricsInterceptor(m)

	require.NoError(t, call(t, interceptor, "", okHandler))
	err := call(t, interceptor, "", func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "not_found")))
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	wantErr := connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))
	err := call(t, LoggingInterceptor(), "", func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, wantErr
	})
	assert.Equal(t, wantErr, err)
	assert.NoError(t, call(t, LoggingInterceptor(), "", okHandler))
}

func newLimited(t *testing.T, cfg RateLimitConfig) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return RateLimiter(ctx, cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	handler := newLimited(t, RateLimitConfig{RequestsPerSecond: 1, Burst: 2})

	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestRateLimiterPerClient(t *testing.T) {
	handler := newLimited(t, RateLimitConfig{RequestsPerSecond: 1, Burst: 1})

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestLimiterSweep(t *testing.T) {
	set := &limiterSet{cfg: RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, clients: map[string]*clientLimiter{}}
	now := time.Now()
	set.get("old", now.Add(-time.Hour))
	set.get("fresh", now)

	set.sweep(now)
	assert.NotContains(t, set.clients, "old")
	assert.Contains(t, set.clients, "fresh")
}
