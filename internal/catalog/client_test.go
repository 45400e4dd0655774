package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stylesphere/stylesphere/internal/log"
)

const validPayload = `[
	{"id":1,"title":"Blue Shirt","price":9.99,"description":"A shirt","category":"men's clothing","image":"https://example.com/1.png","rating":{"rate":4.2,"count":120}},
	{"id":2,"title":"Red Dress","price":25.5,"description":"A dress","category":"women's clothing","image":"https://example.com/2.png","rating":{"rate":4.7,"count":88}}
]`

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(url, log.NewNop())
	if err != nil {
		t.Fatalf("NewClient() = %v", err)
	}
	return c
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("", log.NewNop()); err == nil {
		t.Error("NewClient with empty URL = nil error, want error")
	}
	if _, err := NewClient("https://example.com/products", nil); err == nil {
		t.Error("NewClient with nil logger = nil error, want error")
	}
}

func TestClient_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validPayload))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)

	products, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Fetch() returned %d products, want 2", len(products))
	}
	if products[0].Title != "Blue Shirt" {
		t.Errorf("products[0].Title = %q, want %q", products[0].Title, "Blue Shirt")
	}
	if products[1].Price != 25.5 {
		t.Errorf("products[1].Price = %v, want 25.5", products[1].Price)
	}
}

func TestClient_Fetch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)

	if _, err := c.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Fetch() = %v, want ErrUnavailable", err)
	}
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL)

	if _, err := c.Fetch(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Fetch() = %v, want ErrUnavailable", err)
	}
}

func TestClient_Fetch_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>nope</html>"},
		{"object instead of array", `{"id":1}`},
		{"wrong field type", `[{"id":"one","title":"Blue Shirt","price":9.99,"description":"","category":"","image":"","rating":{"rate":0,"count":0}}]`},
		{"price as string", `[{"id":1,"title":"Blue Shirt","price":"9.99","description":"","category":"","image":"","rating":{"rate":0,"count":0}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c := newTestClient(t, srv.URL)

			if _, err := c.Fetch(context.Background()); !errors.Is(err, ErrDecode) {
				t.Errorf("Fetch() = %v, want ErrDecode", err)
			}
		})
	}
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Fetch(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Fetch() = %v, want ErrUnavailable", err)
	}
}
