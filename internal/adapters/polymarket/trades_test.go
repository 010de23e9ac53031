package polymarket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/whalefetch/internal/adapters/polymarket"
	"github.com/alejandrodnm/whalefetch/internal/domain"
)

const testWallet = "0x63ce342161250d705dc0b16df89036c8e5f9ba9a"

func TestFetchTradePage_MapsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trades", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, testWallet, q.Get("maker"))
		assert.Equal(t, "500", q.Get("limit"))
		assert.Equal(t, "1000", q.Get("offset"))

		w.Header().Set("Content-Type", "application/json")
		// price como string y timestamp unix en segundos, como devuelve la API
		w.Write([]byte(`[
			{
				"id": "t1",
				"proxyWallet": "` + testWallet + `",
				"conditionId": "0xcond",
				"asset": "1234",
				"title": "Bitcoin Up or Down — 3PM ET",
				"slug": "bitcoin-up-or-down",
				"outcome": "Up",
				"side": "BUY",
				"price": "0.47",
				"size": 120.5,
				"timestamp": 1719500000
			}
		]`))
	}))
	defer srv.Close()

	c := polymarket.NewClient(srv.URL, 5*time.Second)
	trades, err := c.FetchTradePage(context.Background(), testWallet, 500, 1000)
	require.NoError(t, err)
	require.Len(t, trades, 1)

	tr := trades[0]
	assert.Equal(t, "t1", tr.ID)
	assert.Equal(t, testWallet, tr.Wallet)
	assert.Equal(t, "0xcond", tr.ConditionID)
	assert.Equal(t, "Bitcoin Up or Down — 3PM ET", tr.Title)
	assert.Equal(t, "BUY", tr.Side)
	assert.InDelta(t, 0.47, tr.Price, 0.0001)
	assert.InDelta(t, 120.5, tr.Size, 0.0001)
	assert.Equal(t, time.Unix(1719500000, 0), tr.Timestamp)
}

func TestFetchTradePage_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := polymarket.NewClient(srv.URL, 5*time.Second)
	trades, err := c.FetchTradePage(context.Background(), testWallet, 500, 0)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestFetchTradePage_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := polymarket.NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchTradePage(context.Background(), testWallet, 500, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPermanent)
}

func TestFetchTradePage_ClientErrorIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad address", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := polymarket.NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchTradePage(context.Background(), testWallet, 500, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPermanent)
}

func TestFetchTradePage_RateLimitedIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := polymarket.NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchTradePage(context.Background(), testWallet, 500, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPermanent)
}

func TestFetchTradePage_MalformedBodyIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	c := polymarket.NewClient(srv.URL, 5*time.Second)
	_, err := c.FetchTradePage(context.Background(), testWallet, 500, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPermanent)
}
