package bestbuy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/catalog"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

func localCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		APIKey:    "test-key",
		BaseURL:   server.URL,
		RateLimit: 1000,
	}, localCatalog(t), nil)
}

func TestSearchProducts_Live(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/products("))
		assert.Contains(t, r.URL.Path, "search=gaming&search=laptop")
		assert.Contains(t, r.URL.Path, "salePrice<=1500")
		assert.Contains(t, r.URL.Path, "inStoreAvailability=true")
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		_, _ = w.Write([]byte(`{"products": [
			{"sku": 6570290, "name": "ASUS ROG Strix G16", "salePrice": 1399.99,
			 "categoryPath": [{"name": "Best Buy"}, {"name": "Laptops"}],
			 "inStoreAvailability": false, "onlineAvailability": true,
			 "manufacturer": "ASUS", "customerReviewAverage": 4.6, "customerReviewCount": 311},
			{"sku": "123", "name": "No Category", "salePrice": 999}
		]}`))
	}))

	products, err := client.SearchProducts(context.Background(), "gaming laptop", service.SearchOptions{
		MaxPrice: 1500,
		InStock:  true,
		Page:     2,
		PageSize: 20,
	})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, model.Product{
		ID:          "6570290",
		SKU:         "6570290",
		Name:        "ASUS ROG Strix G16",
		Price:       1399.99,
		Image:       placeholderImage,
		Category:    "Best Buy",
		Brand:       "ASUS",
		Rating:      4.6,
		ReviewCount: 311,
		InStock:     true,
	}, products[0])
	assert.Equal(t, defaultCategory, products[1].Category)
	assert.False(t, products[1].InStock)
}

func TestSearchProducts_FallsBackWithoutKey(t *testing.T) {
	client := NewClient(Config{}, localCatalog(t), nil)
	assert.False(t, client.Live())

	products, err := client.SearchProducts(context.Background(), "sonos", service.SearchOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestSearchProducts_FallsBackOnAPIError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	products, err := client.SearchProducts(context.Background(), "macbook", service.SearchOptions{MaxPrice: 1500})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "MBA-M2-15", products[0].SKU)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchProducts_EmptyQuery(t *testing.T) {
	client := NewClient(Config{}, localCatalog(t), nil)

	_, err := client.SearchProducts(context.Background(), "  ", service.SearchOptions{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestGetProduct(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/6535726.json":
			_, _ = w.Write([]byte(`{"sku": 6535726, "name": "MacBook Pro 16", "salePrice": 2399, "onlineAvailability": true}`))
		default:
			http.NotFound(w, r)
		}
	}))

	p, err := client.GetProduct(context.Background(), "6535726")
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro 16", p.Name)
	assert.InDelta(t, 2399, p.Price, 0.001)

	_, err = client.GetProduct(context.Background(), "000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestFindStores(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/stores(area(40.74,-73.99,10))"):
			_, _ = w.Write([]byte(`{"stores": [{"storeId": 1, "longName": "Union Square", "city": "New York", "region": "NY", "distance": 0.4}]}`))
		case strings.HasPrefix(r.URL.Path, "/stores(region=NY)"):
			assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
			_, _ = w.Write([]byte(`{"stores": [{"storeId": "2", "name": "Chelsea"}, {"storeId": "1", "name": "Union Square"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusBadRequest)
		}
	}))

	stores, err := client.FindStores(context.Background(), service.StoreQuery{
		HasCoords: true, Latitude: 40.74, Longitude: -73.99, RadiusMi: 10,
	})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, model.Store{ID: "1", Name: "Union Square", City: "New York", Region: "NY", Distance: 0.4}, stores[0])

	stores, err = client.FindStores(context.Background(), service.StoreQuery{Region: "NY"})
	require.NoError(t, err)
	assert.Len(t, stores, 2)

	_, err = client.FindStores(context.Background(), service.StoreQuery{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestFindStores_FallsBackOnError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	stores, err := client.FindStores(context.Background(), service.StoreQuery{Region: "10017"})
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Best Buy Union Square", stores[0].Name)
}

func TestCheckStoreAvailability(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stores/1/products/A.json":
			_, _ = w.Write([]byte(`{"inStoreAvailability": true}`))
		case "/stores/1/products/B.json":
			_, _ = w.Write([]byte(`{"inStoreAvailability": false}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	ctx := context.Background()

	ok, err := client.CheckStoreAvailability(ctx, "A", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.CheckStoreAvailability(ctx, "B", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = client.CheckStoreAvailability(ctx, "C", "1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = client.CheckStoreAvailability(ctx, "", "1")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	offline := NewClient(Config{}, localCatalog(t), nil)
	ok, err = offline.CheckStoreAvailability(ctx, "A", "1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckBundleAvailability(t *testing.T) {
	var inflight, peak atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inflight.Add(1)
		defer inflight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		available := !strings.Contains(r.URL.Path, "/products/6454256.json")
		if available {
			_, _ = w.Write([]byte(`{"inStoreAvailability": true}`))
			return
		}
		_, _ = w.Write([]byte(`{"inStoreAvailability": false}`))
	}))

	bundle, ok := localCatalog(t).Bundle("tv-home-theater-bundle")
	require.True(t, ok)

	result, err := client.CheckBundleAvailability(context.Background(), bundle, "1")
	require.NoError(t, err)

	require.Len(t, result.Products, len(bundle.Products))
	for i, p := range bundle.Products {
		assert.Equal(t, p.SKU, result.Products[i].SKU)
	}
	assert.True(t, result.Products[0].Available)
	assert.False(t, result.Products[3].Available)
	assert.False(t, result.AllAvailable())
	assert.LessOrEqual(t, peak.Load(), int32(maxConcurrentChecks))
}

func TestCheckBundleAvailability_Canceled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"inStoreAvailability": true}`))
	}))

	bundle, _ := localCatalog(t).Bundle("gaming-ultimate-bundle")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CheckBundleAvailability(ctx, bundle, "1")
	assert.ErrorIs(t, err, context.Canceled)
}
