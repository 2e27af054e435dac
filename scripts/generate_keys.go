//go:build ignore

// This script generates the secrets the gateway reads from its environment.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func generateSecureKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func mustKey(name string, length int) string {
	key, err := generateSecureKey(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", name, err)
		os.Exit(1)
	}
	return key
}

func main() {
	fmt.Println("=== Shipping Gateway Key Generator ===")
	fmt.Println()
	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# Admin access tokens (HS256)")
	fmt.Printf("JWT_SECRET_KEY=%s\n", mustKey("JWT secret", 32))
	fmt.Println()
	fmt.Println("# Carrier route API keys, comma separated")
	fmt.Printf("API_KEYS=%s\n", mustKey("API key", 24))
	fmt.Println()
	fmt.Println("# Bootstrap admin, created on first start")
	fmt.Println("ADMIN_USERNAME=admin")
	fmt.Printf("ADMIN_PASSWORD=%s\n", mustKey("admin password", 18))
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment")
}
