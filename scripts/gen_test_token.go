package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"codeberg.org/nutrio/server/internal/auth"
)

// mints a local test token for exercising the gateway by hand:
//
//	go run scripts/gen_test_token.go -user <uuid> -email test@nutrio.app
func main() {
	userID := flag.String("user", "", "user id to embed as the token subject")
	email := flag.String("email", "test@nutrio.app", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("-user is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	now := time.Now()
	claims := auth.Claims{
		Email: *email,
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   *userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(*ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Printf("\nTest JWT token:\n%s\n\n", token)
	fmt.Printf("Export it for curl:\nexport TEST_TOKEN=\"%s\"\n", token)
}
