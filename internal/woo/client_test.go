package woo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsStoreAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, storeAPIPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "100", q.Get("per_page"))
		assert.Equal(t, "phone", q.Get("search"))
		assert.Equal(t, "true", q.Get("featured"))
		assert.Empty(t, q.Get("consumer_key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Phone A","prices":{"price":"1000000","regular_price":"","currency_minor_unit":2}}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Options{BaseURL: srv.URL, UseStoreAPI: true})
	products, err := client.ListProducts(context.Background(), ListParams{
		Page:     2,
		PerPage:  500, // clamped to the upstream max
		Search:   "phone",
		Featured: true,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Phone A", products[0].Name)
	assert.Equal(t, 10000.0, products[0].Price)
}

func TestListProductsRESTAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, restAPIPath, r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ck_test", q.Get("consumer_key"))
		assert.Equal(t, "cs_test", q.Get("consumer_secret"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Options{
		BaseURL:        srv.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	})
	_, err := client.ListProducts(context.Background(), ListParams{Page: 1})
	require.NoError(t, err)
}

func TestListProductsRESTMissingCredentials(t *testing.T) {
	client := NewClient(http.DefaultClient, Options{BaseURL: "http://store.local"})
	_, err := client.ListProducts(context.Background(), ListParams{Page: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WC_CONSUMER_KEY")
}

func TestListProductsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance mode"))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Options{BaseURL: srv.URL, UseStoreAPI: true})
	_, err := client.ListProducts(context.Background(), ListParams{Page: 1})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.Status)
	assert.Equal(t, "maintenance mode", upstream.Body)
}

func TestProductByReferenceResolvesSlugFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("slug") == "smartwatch" {
			w.Write([]byte(`[{"id":7,"name":"Smartwatch","slug":"smartwatch"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Options{BaseURL: srv.URL, UseStoreAPI: true})
	p, err := client.ProductByReference(context.Background(), "smartwatch")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "7", p.ID)
}

func TestProductByReferenceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Options{BaseURL: srv.URL, UseStoreAPI: true})
	p, err := client.ProductByReference(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNoRetriesOnFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), Options{BaseURL: srv.URL, UseStoreAPI: true})
	_, err := client.ListProducts(context.Background(), ListParams{Page: 1})
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var upstream *UpstreamError
	assert.True(t, errors.As(err, &upstream))
}
