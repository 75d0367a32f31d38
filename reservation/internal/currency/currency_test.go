package currency_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripstack/travel-service/reservation/internal/currency"
)

func TestClient_GetQuotes(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/live", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("access_key"))
		require.Equal(t, "USD", r.URL.Query().Get("source"))
		require.Equal(t, "EUR", r.URL.Query().Get("currencies"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"quotes":{"USDEUR":0.9}}`))
	}))
	defer srv.Close()

	cli := currency.NewClient(zap.NewExample(), currency.Config{
		Host:      srv.URL,
		AccessKey: "secret",
		Base:      "USD",
	})

	quotes, err := cli.GetQuotes(context.Background(), "EUR")
	require.NoError(t, err)
	require.True(t, quotes["USDEUR"].Equal(decimal.RequireFromString("0.9")))
}

func TestClient_GetQuotes_APIError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":105,"info":"access restricted"}}`))
	}))
	defer srv.Close()

	cli := currency.NewClient(zap.NewExample(), currency.Config{Host: srv.URL, Base: "USD"})

	_, err := cli.GetQuotes(context.Background(), "EUR")
	require.ErrorContains(t, err, "access restricted")
}

func TestClient_GetQuotes_BadStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cli := currency.NewClient(zap.NewExample(), currency.Config{Host: srv.URL, Base: "USD"})

	_, err := cli.GetQuotes(context.Background(), "EUR")
	require.ErrorContains(t, err, "status 502")
}
