package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crbklasemen/pkg/identity"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "identity email to reset")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *email == "" || *password == "" {
		log.Fatal("--email and --password are required")
	}
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = identity.NewService(db).SetPassword(ctx, *email, *password)
	switch {
	case errors.Is(err, identity.ErrWeakPassword):
		log.Fatal("password too short (min 6)")
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Fatalf("identity %s not found", *email)
	case err != nil:
		log.Fatalf("update failed: %v", err)
	}
	fmt.Printf("Password reset for %s\n", identity.NormalizeEmail(*email))
}
