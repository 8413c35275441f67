package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"Quill/internal/auth"
)

// genjwks generates an ES256 private JWK for signing access and refresh tokens.
// The public half is served at /.well-known/jwks.json.
//
// Usage:
//
//	go run ./cmd/genjwks [--save]
//
// The output belongs in QUILL_JWT_PRIVATE_JWK (plain JSON or base64:<encoded>).
func main() {
	fmt.Println("Generating ES256 signing key...")

	key, err := auth.GenerateSigningKey(auth.DefaultKeyID)
	if err != nil {
		log.Fatalf("Failed to generate signing key: %v", err)
	}

	compact, err := json.Marshal(key)
	if err != nil {
		log.Fatalf("Failed to marshal JWK: %v", err)
	}

	fmt.Println("\nAdd one of these to your environment:")
	fmt.Println("\nQUILL_JWT_PRIVATE_JWK='" + string(compact) + "'")
	fmt.Println("QUILL_JWT_PRIVATE_JWK=base64:" + base64.StdEncoding.EncodeToString(compact))
	fmt.Println("\nKeep this key secret and never commit it. Generate a separate key per environment.")

	if len(os.Args) > 1 && os.Args[1] == "--save" {
		indented, err := json.MarshalIndent(key, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal JWK: %v", err)
		}
		filename := "quill-signing-key.json"
		if err := os.WriteFile(filename, indented, 0o600); err != nil {
			log.Fatalf("Failed to write key file: %v", err)
		}
		fmt.Printf("\nPrivate key saved to %s\n", filename)
	}
}
