package lib

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitializeTransaction(t *testing.T) {
	var gotAuth string
	var gotBody ChapaCheckoutInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Hosted Link",
			"status":  "success",
			"data": map[string]any{
				"checkout_url": "https://checkout.chapa.co/checkout/payment/abc123",
			},
		})
	}))
	defer srv.Close()

	c := NewChapaClientWith(srv.URL, "sk-test")
	res, err := c.InitializeTransaction(&ChapaCheckoutInput{
		Amount:   "360.00",
		Currency: "ETB",
		Email:    "guest@example.com",
		TxRef:    "tx-1",
	})

	assert.Nil(t, err)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "tx-1", gotBody.TxRef)
	assert.Equal(t, "https://checkout.chapa.co/checkout/payment/abc123", res.Data.CheckoutURL)
}

func TestInitializeTransactionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Invalid currency",
			"status":  "failed",
		})
	}))
	defer srv.Close()

	c := NewChapaClientWith(srv.URL, "sk-test")
	res, err := c.InitializeTransaction(&ChapaCheckoutInput{
		Amount:   "360.00",
		Currency: "XYZ",
		Email:    "guest@example.com",
		TxRef:    "tx-2",
	})

	assert.Nil(t, res)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Invalid currency")
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/transaction/verify/tx-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Payment details",
			"status":  "success",
			"data": map[string]any{
				"tx_ref":   "tx-1",
				"status":   "success",
				"amount":   360.00,
				"currency": "ETB",
			},
		})
	}))
	defer srv.Close()

	c := NewChapaClientWith(srv.URL, "sk-test")
	res, err := c.VerifyTransaction("tx-1")

	assert.Nil(t, err)
	assert.Equal(t, "success", res.Data.Status)
	assert.Equal(t, 360.00, res.Data.Amount)
	assert.Equal(t, "ETB", res.Data.Currency)
}
