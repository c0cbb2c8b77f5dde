package payorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReturnsRedirect(t *testing.T) {
	var gotAuth string
	var gotBody map[string]Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/psp/paymentorders", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"paymentOrder": {"id": "/psp/paymentorders/po-1", "status": "Initialized"},
			"operations": [
				{"rel": "update-order", "href": "https://pay.example/update", "method": "PATCH"},
				{"rel": "redirect-checkout", "href": "https://pay.example/checkout/po-1", "method": "GET"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL, Token: "secret", PayeeID: "merchant-1"})
	result, err := client.Create(context.Background(), Request{
		Currency:  "SEK",
		Amount:    15000,
		URLs:      URLs{CallbackURL: "https://app.example/payments/callback"},
		PayeeInfo: PayeeInfo{PayeeID: "merchant-1", PayeeReference: "REF1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/psp/paymentorders/po-1", result.ID)
	assert.Equal(t, "https://pay.example/checkout/po-1", result.RedirectURL)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "Purchase", gotBody["paymentorder"].Operation)
	assert.Equal(t, int64(15000), gotBody["paymentorder"].Amount)
}

func TestCreateWithoutRedirectOperation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"paymentOrder": {"id": "/psp/paymentorders/po-2"}, "operations": []}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := client.Create(context.Background(), Request{Amount: 100})
	assert.ErrorIs(t, err, ErrNoRedirect)
}

func TestCreateProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"title": "invalid payeeReference"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	_, err := client.Create(context.Background(), Request{Amount: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestGetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/psp/paymentorders/po-3", r.URL.Path)
		_, _ = w.Write([]byte(`{"paymentOrder": {"id": "/psp/paymentorders/po-3", "status": "Paid"}}`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	status, err := client.GetStatus(context.Background(), "/psp/paymentorders/po-3")
	require.NoError(t, err)
	assert.Equal(t, "Paid", status)
}

func TestCapture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/psp/paymentorders/po-4/captures", r.URL.Path)
		var body map[string]map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 15000, body["transaction"]["amount"])
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	err := client.Capture(context.Background(), "/psp/paymentorders/po-4", 15000, 0, "REF2")
	assert.NoError(t, err)
}
