// Command klasemen_inbox imports klasemen CSV exports dropped into a folder.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crbklasemen/models"
	"crbklasemen/pkg/docstore"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dirFlag := flag.String("dir", "inbox/klasemen", "directory to scan for klasemen CSV files")
	watch := flag.Bool("watch", false, "keep watching the directory for new files")
	settle := flag.Duration("settle", 300*time.Millisecond, "quiet period before a written file is imported")
	flag.Parse()
	if *settle < minSettle {
		log.Fatalf("-settle must be at least %s", minSettle)
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := os.MkdirAll(*dirFlag, 0o755); err != nil {
		log.Fatalf("inbox dir: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := docstore.New[models.Klasemen](db, "klasemen", "top asc")
	ib := &inbox{dir: *dirFlag, create: store.Create, settle: *settle}
	ib.drain(ctx)
	if *watch {
		if err := ib.watch(ctx); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	}
}
