// Command token mints an operator JWT for the mutating watch-list routes.
//
//	go run ./cmd/token -sub alice -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	jwtmw "stock_watchlist/internal/platform/jwt"
)

func main() {
	subject := flag.String("sub", "operator", "subject (sub claim) of the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load(".env")

	secret := jwtmw.SecretFromEnv()
	if secret == "" {
		fmt.Fprintln(os.Stderr, jwtmw.EnvKeyJWTSecret+" is not set")
		os.Exit(1)
	}

	token, err := jwtmw.NewGenerator(secret, *ttl).GenerateToken(*subject)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
