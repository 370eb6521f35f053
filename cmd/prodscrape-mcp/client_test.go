package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/use-agent/prodscrape/models"
)

func TestAPIClientProduct(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/products/B0B2JZXW8L":
			_, _ = w.Write([]byte(`{"success":true,"identifier":"B0B2JZXW8L","source_url":"https://www.amazon.com/dp/B0B2JZXW8L",
"record":{"title":"Mug","price":"$9.99","photo_urls":["https://x/1.jpg"]},"saved":true}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"identifier":"NOPE","record":{},"error":{"code":"NETWORK_FAILURE","message":"unexpected status 404"}}`))
		}
	}))
	defer ts.Close()

	c := newAPIClient(ts.URL+"/", "k")

	resp, err := c.Product(context.Background(), "B0B2JZXW8L")
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	out := formatProduct(resp)
	for _, want := range []string{"Title: Mug", "Price: $9.99", "Photos (1):", "- https://x/1.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatted output missing %q:\n%s", want, out)
		}
	}

	resp, err = c.Product(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != models.ErrCodeNetwork {
		t.Errorf("unexpected error response: %+v", resp)
	}

	bad := newAPIClient(ts.URL, "wrong")
	if _, err := bad.Product(context.Background(), "B0B2JZXW8L"); err == nil {
		t.Error("expected an error for an unauthorized request without a body")
	}
}

func TestFormatProduct_EmptyRecord(t *testing.T) {
	out := formatProduct(&models.ProductResponse{Identifier: "X", Record: models.Record{}})
	if !strings.Contains(out, "No product data") {
		t.Errorf("unexpected output: %s", out)
	}
}
