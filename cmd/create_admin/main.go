package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin account. Intended for first deployment and local dev.
func main() {
	_ = godotenv.Load()

	name := flag.String("name", "Administrator", "admin display name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	super := flag.Bool("super", false, "grant super_admin instead of admin")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	role := domain.RoleAdmin
	if *super {
		role = domain.RoleSuperAdmin
	}

	user := &domain.User{
		FullName:     *name,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	fmt.Printf("created %s %s (user_id %s)\n", role, user.Email, user.UserID)
}
