// Command create-user inserts an account directly into the configured
// database and prints a token for it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dom/taskchat-backend/internal/auth"
	"github.com/dom/taskchat-backend/internal/config"
	"github.com/dom/taskchat-backend/internal/repository/gormstore"
	"github.com/dom/taskchat-backend/internal/service"
)

func main() {
	email := flag.String("email", "", "Account email (required)")
	name := flag.String("name", "", "Display name")
	password := flag.String("password", "", "Account password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gormstore.NewConnection(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	repos := gormstore.NewRepositories(db)
	authService := service.NewAuthService(
		repos.User,
		auth.NewPasswordHasher(cfg.BcryptCost),
		auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry),
	)

	ctx := context.Background()
	user, err := authService.SignUp(ctx, service.SignUpInput{
		Email:    *email,
		Name:     *name,
		Password: *password,
	})
	if errors.Is(err, service.ErrEmailExists) {
		log.Fatalf("A user with email %s already exists", service.NormalizeEmail(*email))
	}
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	token, err := authService.SignIn(ctx, service.SignInInput{Email: *email, Password: *password})
	if err != nil {
		log.Fatalf("Failed to sign in: %v", err)
	}

	fmt.Println("=========================================")
	fmt.Printf("  User ID: %s\n", user.ID)
	fmt.Printf("  Email:   %s\n", user.Email)
	fmt.Printf("  Token:   %s\n", token.AccessToken)
	fmt.Println("=========================================")
}
