package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

type gatewayPaymentResponse struct {
	ID     string `json:"id"`
	Amount uint64 `json:"amount"`
	Status string `json:"status"`
}

// VerifyGatewayPayment checks a payment reference with the gateway before the
// wallet is credited. The gateway amount must match what the client claims.
func VerifyGatewayPayment(paymentID string, amount uint64) error {
	if config.AppConfig.GatewayApiURL == "" {
		// No gateway configured (local/dev). Accept the payment as-is.
		log.Printf("Payment gateway not configured, skipping verification for %s", paymentID)
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.GatewayApiKey).
		Get(config.AppConfig.GatewayApiURL + "/v1/payments/" + paymentID)
	if err != nil {
		return fmt.Errorf("gateway request failed: %v", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode())
	}

	var payment gatewayPaymentResponse
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return fmt.Errorf("invalid gateway response: %v", err)
	}

	if payment.Status != "captured" {
		return fmt.Errorf("payment %s not captured (status %s)", paymentID, payment.Status)
	}
	if payment.Amount != amount {
		return fmt.Errorf("payment %s amount mismatch: gateway %d, claimed %d", paymentID, payment.Amount, amount)
	}

	return nil
}
