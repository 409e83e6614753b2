// Command orphan_identities lists identities that no admin record points at.
// Deleting an admin leaves its identity able to sign in, so these pile up.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const orphanQuery = `
SELECT i.id, i.email, i.created_at
FROM identities i
LEFT JOIN admins a ON a.identity_id = i.id
WHERE a.id IS NULL
ORDER BY i.created_at`

type orphan struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

func listOrphans(ctx context.Context, db *sql.DB) ([]orphan, error) {
	rows, err := db.QueryContext(ctx, orphanQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []orphan
	for rows.Next() {
		var o orphan
		if err := rows.Scan(&o.ID, &o.Email, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func main() {
	revoke := flag.Bool("revoke-tokens", false, "also revoke refresh tokens held by orphaned identities")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	orphans, err := listOrphans(ctx, db)
	if err != nil {
		log.Fatalf("query: %v", err)
	}
	if len(orphans) == 0 {
		fmt.Println("no orphaned identities")
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tCREATED")
	for _, o := range orphans {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Email, humanize.Time(o.CreatedAt))
	}
	tw.Flush()

	if !*revoke {
		return
	}
	var revoked int64
	for _, o := range orphans {
		res, err := db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = true WHERE identity_id = $1 AND NOT revoked`, o.ID)
		if err != nil {
			log.Fatalf("revoke tokens for %s: %v", o.Email, err)
		}
		n, _ := res.RowsAffected()
		revoked += n
	}
	fmt.Printf("revoked %d refresh tokens\n", revoked)
}
