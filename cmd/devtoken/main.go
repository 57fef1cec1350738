// Command devtoken mints a bearer token for local development. It reads
// JWT_SECRET (and TOKEN_TTL) the same way the API server does, including any
// .env file in the working directory.
//
//	devtoken -user 3f1c...    # token for an existing user id
//	devtoken                  # token for a fresh random user id
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/auth"
	"github.com/pkordes/tripcrew/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	fs.SetOutput(stderr)
	user := fs.String("user", "", "user id (UUID) to put in the token subject; random when empty")
	ttl := fs.Duration("ttl", 0, "token lifetime; defaults to TOKEN_TTL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret, defaultTTL, err := settings()
	if err != nil {
		return err
	}
	if *ttl <= 0 {
		*ttl = defaultTTL
	}

	userID := uuid.New()
	if *user != "" {
		userID, err = uuid.Parse(*user)
		if err != nil {
			return fmt.Errorf("-user: %w", err)
		}
	}

	token, err := auth.NewJWTManager(secret, *ttl).Generate(userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "user %s, expires in %s\n", userID, *ttl)
	fmt.Fprintln(stdout, token)
	return nil
}

// settings takes the signing secret and default lifetime from the server
// configuration. Only JWT_SECRET is required here, so a missing DATABASE_URL
// is tolerated by falling back to the raw environment.
func settings() (string, time.Duration, error) {
	if cfg, err := config.Load(); err == nil {
		return cfg.JWTSecret, cfg.TokenTTL, nil
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", 0, fmt.Errorf("JWT_SECRET is not set")
	}
	return secret, 24 * time.Hour, nil
}
