package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"travelapi/src/config"
)

// ChapaClient talks to the Chapa REST API. Initialize returns a hosted
// checkout URL for a tx_ref we generate; Verify reports the current
// gateway-side status for a tx_ref.
type ChapaClient struct {
	BaseURL   string
	secretKey string
	http      *http.Client
}

var chapaClient *ChapaClient

func GetChapaClient() *ChapaClient {
	if chapaClient != nil {
		return chapaClient
	}
	cfg := config.Get()
	c := &ChapaClient{
		BaseURL:   cfg.ChapaBaseURL,
		secretKey: cfg.ChapaSecretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
	chapaClient = c
	return c
}

// NewChapaClient replaces the gateway client. Used by tests.
func NewChapaClient(c *ChapaClient) *ChapaClient {
	chapaClient = c
	return chapaClient
}

func NewChapaClientWith(baseURL, secretKey string) *ChapaClient {
	return &ChapaClient{
		BaseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

type ChapaCheckoutInput struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
}

type ChapaCheckoutResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type ChapaVerifyResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    struct {
		TxRef    string  `json:"tx_ref"`
		Status   string  `json:"status"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

func (c *ChapaClient) InitializeTransaction(input *ChapaCheckoutInput) (*ChapaCheckoutResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/transaction/initialize", c.BaseURL)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error reaching payment gateway: %s", err.Error())
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var out ChapaCheckoutResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[chapa] Error parsing initialize response: %s\n", err.Error())
		return nil, err
	}
	if res.StatusCode >= 400 || out.Status != "success" {
		return nil, fmt.Errorf("gateway rejected transaction [%s]: %s", input.TxRef, out.Message)
	}
	return &out, nil
}

func (c *ChapaClient) VerifyTransaction(txRef string) (*ChapaVerifyResponse, error) {
	url := fmt.Sprintf("%s/v1/transaction/verify/%s", c.BaseURL, txRef)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error reaching payment gateway: %s", err.Error())
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	var out ChapaVerifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("[chapa] Error parsing verify response: %s\n", err.Error())
		return nil, err
	}
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("gateway error for transaction [%s]: %s", txRef, out.Message)
	}
	return &out, nil
}
