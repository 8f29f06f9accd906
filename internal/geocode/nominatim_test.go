package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveAddressReturnsDisplayName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		w.Write([]byte(`{"display_name": "12, Abay Avenue, Almaty, Kazakhstan"}`))
	}))
	defer server.Close()

	resolver := NewNominatimResolver(server.URL, server.Client())
	address := resolver.ResolveAddress(context.Background(), 43.238949, 76.889709)
	assert.Equal(t, "12, Abay Avenue, Almaty, Kazakhstan", address)
}

func TestResolveAddressFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewNominatimResolver(server.URL, server.Client())
	assert.Equal(t, FallbackAddress, resolver.ResolveAddress(context.Background(), 1, 1))
}

func TestResolveAddressFallsBackOnGarbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	resolver := NewNominatimResolver(server.URL, server.Client())
	assert.Equal(t, FallbackAddress, resolver.ResolveAddress(context.Background(), 1, 1))
}

func TestResolveAddressFallsBackOnEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": ""}`))
	}))
	defer server.Close()

	resolver := NewNominatimResolver(server.URL, server.Client())
	assert.Equal(t, FallbackAddress, resolver.ResolveAddress(context.Background(), 1, 1))
}

func TestResolveAddressFallsBackWhenUnreachable(t *testing.T) {
	resolver := NewNominatimResolver("http://127.0.0.1:1/reverse", &http.Client{
		Timeout: 200 * time.Millisecond,
	})
	assert.Equal(t, FallbackAddress, resolver.ResolveAddress(context.Background(), 1, 1))
}
