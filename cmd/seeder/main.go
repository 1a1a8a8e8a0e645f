package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"book-lender/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	TotalUsers = 50
	TotalBooks = 200
)

// 開発・ベンチ用のシードデータ投入。既にデータがあればスキップする。
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Unable to load config: %v", err)
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DB.BuildDSN())
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	log.Println("--- Seeding Database ---")

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		log.Fatalf("Count query failed: %v", err)
	}
	if count >= TotalUsers {
		log.Printf("Database already has %d users. Skipping.", count)
		return
	}

	log.Printf("Generating %d users...", TotalUsers)
	now := time.Now().UTC()
	userRows := [][]interface{}{}
	userIDs := make([]uuid.UUID, 0, TotalUsers)
	for i := 0; i < TotalUsers; i++ {
		id := uuid.New()
		userIDs = append(userIDs, id)
		userRows = append(userRows, []interface{}{
			id,
			fmt.Sprintf("user%03d", i),
			fmt.Sprintf("user%03d@example.com", i),
			now,
		})
	}

	userCount, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"users"},
		[]string{"id", "name", "email", "created_at"},
		pgx.CopyFromRows(userRows),
	)
	if err != nil {
		log.Fatalf("Bulk insert of users failed: %v", err)
	}

	log.Printf("Generating %d books...", TotalBooks)
	bookRows := [][]interface{}{}
	for i := 0; i < TotalBooks; i++ {
		owner := userIDs[i%len(userIDs)]
		bookRows = append(bookRows, []interface{}{
			uuid.New(),
			fmt.Sprintf("Sample Book %03d", i),
			fmt.Sprintf("Author %02d", i%25),
			fmt.Sprintf("978-4-0000-%04d-0", i),
			"Seeded sample book",
			owner,
			now,
		})
	}

	bookCount, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"books"},
		[]string{"id", "title", "author", "isbn", "description", "owner_id", "created_at"},
		pgx.CopyFromRows(bookRows),
	)
	if err != nil {
		log.Fatalf("Bulk insert of books failed: %v", err)
	}

	log.Printf("Successfully seeded %d users and %d books.", userCount, bookCount)
}
