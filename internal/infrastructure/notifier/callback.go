package notifier

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// callbackClient bounds every webhook attempt; a merchant endpoint that
// hangs must not pin goroutines.
var callbackClient = &http.Client{Timeout: 10 * time.Second}

// SendCallback delivers the merchant webhook in a goroutine. One attempt,
// best-effort: failures are logged, never retried and never propagated.
func SendCallback(callbackURL string, payload CallbackPayload) {
	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			log.Printf("Failed to marshal callback payload for %s: %v", payload.PaymentID, err)
			return
		}

		resp, err := callbackClient.Post(callbackURL, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("Callback to %s failed: %v", callbackURL, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Printf("Callback to %s returned status %d", callbackURL, resp.StatusCode)
			return
		}
		log.Printf("Callback delivered to %s for payment %s", callbackURL, payload.PaymentID)
	}()
}
