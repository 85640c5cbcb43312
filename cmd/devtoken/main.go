// Command devtoken prints a signed bearer token for calling the API locally.
package main

import (
	"flag"
	"fmt"
	"os"

	"skillsharehub/config"
	"skillsharehub/internal/adapters/auth"
	"skillsharehub/internal/domain"
)

func main() {
	userID := flag.String("user", "", "user id placed in the token subject (required)")
	username := flag.String("username", "", "display name carried in the token")
	expiry := flag.Duration("expiry", 0, "token lifetime; defaults to JWT_EXPIRY")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "devtoken: -user is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	ttl := cfg.JWTExpiry
	if *expiry > 0 {
		ttl = *expiry
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(domain.Identity{UserID: *userID, Username: *username}, ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
