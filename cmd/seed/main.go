// seed inserts a verified test user with sample categories and
// transactions into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/AbdulmosenAlmuzaini/mezan/internal/domain"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/infrastructure/postgres"
	"github.com/AbdulmosenAlmuzaini/mezan/internal/password"
)

const (
	seedEmail    = "seed@mezan.local"
	seedPassword = "Str0ng!Pass"
)

var categories = []struct {
	name string
	typ  domain.EntryType
}{
	{"Salary", domain.EntryIncome},
	{"Freelance", domain.EntryIncome},
	{"Groceries", domain.EntryExpense},
	{"Rent", domain.EntryExpense},
	{"Transport", domain.EntryExpense},
	{"Eating Out", domain.EntryExpense},
}

var transactions = []struct {
	title    string
	amount   float64
	category string
	typ      domain.EntryType
}{
	{"Monthly salary", 12000, "Salary", domain.EntryIncome},
	{"Website project", 2500, "Freelance", domain.EntryIncome},
	{"Weekly groceries", 430.50, "Groceries", domain.EntryExpense},
	{"Apartment rent", 3200, "Rent", domain.EntryExpense},
	{"Fuel", 180, "Transport", domain.EntryExpense},
	{"Dinner with friends", 260.75, "Eating Out", domain.EntryExpense},
	{"Groceries top-up", 95.20, "Groceries", domain.EntryExpense},
	{"Taxi", 48, "Transport", domain.EntryExpense},
}

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	hasher := password.NewHasher(password.DefaultParams())
	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	user, err := users.Create(ctx, &domain.User{
		Email:        seedEmail,
		Name:         "Seed User",
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("create seed user: %v", err)
	}

	// The seed user skips email verification.
	if _, err := pool.Exec(ctx,
		`UPDATE users SET is_verified = TRUE WHERE id = $1`, user.ID); err != nil {
		log.Fatalf("verify seed user: %v", err)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	for _, c := range categories {
		if _, err := categoryRepo.Create(ctx, &domain.Category{
			UserID: user.ID,
			Name:   c.name,
			Type:   c.typ,
		}); err != nil {
			log.Fatalf("create category %q: %v", c.name, err)
		}
	}

	transactionRepo := postgres.NewTransactionRepository(pool)
	for _, t := range transactions {
		if _, err := transactionRepo.Create(ctx, &domain.Transaction{
			UserID:   user.ID,
			Title:    t.title,
			Amount:   t.amount,
			Category: t.category,
			Type:     t.typ,
		}); err != nil {
			log.Fatalf("create transaction %q: %v", t.title, err)
		}
	}

	fmt.Printf("seeded %s (password %s) with %d categories and %d transactions\n",
		seedEmail, seedPassword, len(categories), len(transactions))
}
