package main

import (
	"context"
	"log"
	"os"

	"go-stockcontrol-ws/internal/model"
	"go-stockcontrol-ws/internal/repository"
	"go-stockcontrol-ws/pkg/database"

	"github.com/joho/godotenv"
)

// Provisions or rotates a user's access token. Tokens are set out-of-band;
// the sync path never writes them.
//
//	go run ./cmd/set-token <username> <token>
func main() {
	if len(os.Args) != 3 {
		log.Fatal("usage: set-token <username> <token>")
	}
	username, token := os.Args[1], os.Args[2]

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Document{})

	// 3. Set token (creates the document row if the user is new)
	repo := repository.NewDocumentRepo(db)
	if err := repo.SetToken(context.Background(), username, token); err != nil {
		log.Fatalf("Failed to set token for %s: %v", username, err)
	}

	log.Printf("Token updated for user %s", username)
}
