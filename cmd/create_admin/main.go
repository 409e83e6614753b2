package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/identity"
	"crbklasemen/pkg/staff"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_admin <email> <password> [username] [divisi]")
		os.Exit(2)
	}
	email := os.Args[1]
	password := os.Args[2]
	username := strings.SplitN(email, "@", 2)[0]
	if len(os.Args) > 3 {
		username = os.Args[3]
	}
	divisi := ""
	if len(os.Args) > 4 {
		divisi = os.Args[4]
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	svc := staff.NewService(db, identity.NewService(db))
	admin := models.Admin{Username: username, Email: email, Divisi: divisi}
	if err := svc.Create(ctx, &admin, password); err != nil {
		if errors.Is(err, identity.ErrEmailInUse) {
			fmt.Printf("email %s already in use\n", email)
			os.Exit(0)
		}
		log.Fatalf("failed to create admin: %v", err)
	}
	fmt.Printf("created admin %s id=%s identity=%s\n", admin.Email, admin.ID, admin.IdentityID)
}
