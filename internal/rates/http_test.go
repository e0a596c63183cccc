package rates_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstrecon/internal/domain"
	"gstrecon/internal/rates"
)

func TestHTTPLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("keyword") {
		case "8471":
			_, _ = w.Write([]byte(`{"keyword":"8471","rate":"18%"}`))
		case "1006":
			_, _ = w.Write([]byte(`{"keyword":"1006","rate":5}`))
		case "broken":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	l := rates.NewHTTPLookup(srv.URL, srv.Client(), 100, 10)

	got, err := l.Lookup(context.Background(), "8471")
	require.NoError(t, err)
	assert.Equal(t, "18%", got)

	got, err = l.Lookup(context.Background(), "1006")
	require.NoError(t, err)
	assert.Equal(t, "5", got)

	_, err = l.Lookup(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrRateNotFound)

	_, err = l.Lookup(context.Background(), "broken")
	assert.Error(t, err)
}

func TestHTTPLookup_CancelledContext(t *testing.T) {
	l := rates.NewHTTPLookup("http://127.0.0.1:1", nil, 1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Lookup(ctx, "8471")
	assert.Error(t, err)
}
