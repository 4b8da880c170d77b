package app

import (
	"bytes"
	"net/http/httptest"
	"time"

	"github.com/guttosm/pricing-service/config"
)

func baseConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 10 * time.Second,
		},
		Pricing: config.PricingConfig{
			CurrencySymbol: "R$",
			DefaultLocale:  "en",
		},
		Idempotency: config.IdempotencyConfig{
			Backend:  "memory",
			TTL:      time.Minute,
			Capacity: 100,
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func serve(app *App, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}
