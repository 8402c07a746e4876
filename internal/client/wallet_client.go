package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WalletClient talks to the wallet service that owns merchant key storage.
// Key management itself is out of scope here; the engine only needs the
// settlement address a charge should be paid into.
type WalletClient interface {
	GetSettlementAddress(merchantID string) (string, error)
}

type HTTPWalletClient struct {
	Address string
	client  *http.Client
}

type settlementAddressResponse struct {
	MerchantID    string `json:"merchant_id"`
	WalletAddress string `json:"wallet_address"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPWalletClient(address string) (*HTTPWalletClient, error) {
	return &HTTPWalletClient{
		Address: address,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

func (c *HTTPWalletClient) GetSettlementAddress(merchantID string) (string, error) {
	response, err := c.client.Get(fmt.Sprintf("%s/wallets/%s/settlement-address", c.Address, merchantID))
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var addressResponse settlementAddressResponse
		if err := json.Unmarshal(responseBodyBytes, &addressResponse); err != nil {
			return "", err
		}
		if addressResponse.WalletAddress == "" {
			return "", fmt.Errorf("wallet service returned empty settlement address for merchant %s", merchantID)
		}
		return addressResponse.WalletAddress, nil
	}

	var errResponse errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResponse); err != nil {
		return "", fmt.Errorf("wallet service returned status %d", response.StatusCode)
	}
	return "", errors.New(errResponse.Error)
}
