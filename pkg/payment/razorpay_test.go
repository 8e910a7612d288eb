package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateOrderAgainstStub(t *testing.T) {
	var gotReq OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key" || pass != "secret" {
			t.Error("missing or wrong basic auth")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Order{ID: "order_123", Amount: gotReq.Amount, Currency: gotReq.Currency})
	}))
	defer srv.Close()

	client := NewRazorpayClientWithBaseURL("key", "secret", srv.URL)
	order, err := client.CreateOrder(context.Background(), OrderRequest{
		Amount:   50000,
		Currency: "INR",
		Receipt:  "bk_test_1",
		Notes:    map[string]string{"rideId": "r1"},
	})
	if err != nil {
		t.Fatalf("creating order: %v", err)
	}
	if order.ID != "order_123" || order.Amount != 50000 || order.Currency != "INR" {
		t.Errorf("order = %+v", order)
	}
	if gotReq.Receipt != "bk_test_1" || gotReq.Notes["rideId"] != "r1" {
		t.Errorf("request seen by gateway = %+v", gotReq)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewRazorpayClientWithBaseURL("key", "secret", srv.URL)
	if _, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR"}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestCreateOrderRequiresKeys(t *testing.T) {
	client := NewRazorpayClient("", "")
	if _, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 100}); err == nil {
		t.Fatal("expected error when keys are not configured")
	}
}
