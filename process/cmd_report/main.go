package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crbklasemen/pkg/periode"
	"crbklasemen/process/report"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	month := flag.String("month", periode.Label(time.Now()), `period label to report, e.g. "November 2025"`)
	list := flag.Bool("list", false, "list matching rows")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN not set; export DB_DSN and retry")
		os.Exit(2)
	}
	if !periode.DefaultWindow().Contains(*month) {
		log.Printf("warning: %q is outside the selectable periods", *month)
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rep, err := report.Build(ctx, gdb, *month)
	if err != nil {
		log.Fatalf("report: %v", err)
	}
	report.Write(os.Stdout, rep, *list)
}
