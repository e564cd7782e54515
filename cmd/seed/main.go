package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the admin account and a starter menu. Intended for fresh
// environments, safe to re-run: existing rows are left alone.
func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL not set in environment")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := seed(db); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✅ Seeding complete.")
}

func seed(db *sql.DB) error {
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password, name, phone, role)
		VALUES ($1, $2, 'Big Boss', '+380999999999', 'ADMIN')
		ON CONFLICT (email) DO NOTHING
	`, "admin@sushi.com", string(hash))
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	categories := []struct {
		nameRu, nameEn, nameUk, nameNl, slug string
	}{
		{"Роллы", "Rolls", "Роли", "Rolls", "rolls"},
		{"Сеты", "Sets", "Сети", "Sets", "sets"},
		{"Напитки", "Drinks", "Напої", "Dranken", "drinks"},
	}

	catIDs := make(map[string]int)
	for _, c := range categories {
		var id int
		err := db.QueryRow(`
			INSERT INTO categories (name_ru, name_en, name_uk, name_nl, slug)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
			RETURNING id
		`, c.nameRu, c.nameEn, c.nameUk, c.nameNl, c.slug).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.slug, err)
		}
		catIDs[c.slug] = id
	}

	products := []struct {
		slug          string
		nameRu        string
		nameEn        string
		ingredientsRu string
		price         float64
		popular       bool
	}{
		{"rolls", "Филадельфия Классик", "Philadelphia Classic", "Лосось, сливочный сыр, огурец, рис, нори", 245, true},
		{"rolls", "Калифорния", "California", "Краб, авокадо, огурец, икра тобико", 210, false},
		{"sets", "Сет Дракон", "Dragon Set", "32 шт: Филадельфия, Калифорния, Унаги маки", 780, true},
		{"drinks", "Кола 0.5", "Cola 0.5", "", 45, false},
	}

	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (category_id, name_ru, name_en, ingredients_ru, price, is_popular)
			SELECT $1, $2, $3, NULLIF($4, ''), $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE name_ru = $2)
		`, catIDs[p.slug], p.nameRu, p.nameEn, p.ingredientsRu, p.price, p.popular)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.nameRu, err)
		}
	}

	return nil
}
