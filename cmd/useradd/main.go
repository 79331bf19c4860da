// Command useradd provisions an account. There is no public registration
// endpoint; accounts are created out of band with this tool.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/basciYusuf/e-commerce/internal/config"
	"github.com/basciYusuf/e-commerce/internal/hash"
	"github.com/basciYusuf/e-commerce/internal/models"
	"github.com/basciYusuf/e-commerce/internal/repo"
)

func main() {
	email := flag.String("email", "", "account email (required)")
	password := flag.String("password", "", "account password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	pwHash, err := hash.HashPassword(*password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	user := models.User{Email: *email, PasswordHash: pwHash}
	if err := repo.NewGormRepo(db).CreateUser(context.Background(), &user); err != nil {
		log.Fatalf("cannot create user: %v", err)
	}

	log.Printf("created user %d (%s)", user.ID, user.Email)
}
