package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/reachdesk/backend/internal/auth"
	"github.com/reachdesk/backend/internal/config"
	"go.uber.org/zap"
)

// issue-token prints a bearer token for local use. Production tokens come
// from the external identity provider signing with the same JWT_SECRET.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	userID := flag.String("user", "", "user id to put in the token")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_EXPIRATION_HOURS")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: issue-token -user <id> [-ttl 1h]")
		os.Exit(2)
	}

	cfg := config.Load()
	cfg.Validate(log)

	expiration := cfg.JWTExpiration
	if *ttl > 0 {
		expiration = *ttl
	}

	token, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, *userID, expiration)
	if err != nil {
		log.Fatal("failed to issue token", zap.Error(err))
	}

	log.Info("token issued",
		zap.String("user_id", *userID),
		zap.Time("expires_at", time.Now().Add(expiration)),
	)
	fmt.Println(token)
}
