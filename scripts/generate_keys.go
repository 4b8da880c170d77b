//go:build ignore

// This script generates the secrets the pricing service reads from the environment.
// Run with: go run scripts/generate_keys.go [client-id ...]
//
// Each client id gets a random secret and an AUTH_CLIENTS entry holding its bcrypt hash.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/guttosm/pricing-service/internal/service"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func mustKey(length int, what string) string {
	key, err := generateSecureKey(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", what, err)
		os.Exit(1)
	}
	return key
}

func main() {
	fmt.Println("=== Pricing Service Key Generator ===")
	fmt.Println()

	jwtSecret := mustKey(32, "JWT secret")
	apiKey := mustKey(24, "API key")

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# JWT Configuration")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	fmt.Println()
	fmt.Println("# API Key (used when AUTH_CLIENTS is empty)")
	fmt.Printf("API_KEYS=%s\n", apiKey)

	if len(os.Args) < 2 {
		return
	}

	entries := make([]string, 0, len(os.Args)-1)
	fmt.Println()
	fmt.Println("# Client secrets (hand these to the clients, never store them)")
	for _, clientID := range os.Args[1:] {
		secret := mustKey(24, "client secret")
		hash, err := service.HashClientSecret(secret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error hashing secret for %s: %v\n", clientID, err)
			os.Exit(1)
		}
		fmt.Printf("#   %s: %s\n", clientID, secret)
		entries = append(entries, clientID+":"+hash)
	}
	fmt.Printf("AUTH_CLIENTS=%s\n", strings.Join(entries, ","))

	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
}
