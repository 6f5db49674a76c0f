package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"famchat/internal/database"
	"famchat/internal/domain"
)

// Seeds a local database with the helper bot and a small demo family.
// Idempotent: existing accounts (matched by email) are left alone, except
// that the bot account always gets its bot flag.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "famchat.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// ================== BOT ==================
	log.Println("Creating bot account...")

	var botUser domain.User
	err = db.Where("email = ?", "bot@famchat.local").First(&botUser).Error
	if err != nil {
		// The bot never logs in; the hash just satisfies the not-null column.
		hash, _ := bcrypt.GenerateFromPassword([]byte("disabled-login"), bcrypt.DefaultCost)
		botUser = domain.User{
			Email:          "bot@famchat.local",
			PasswordHash:   string(hash),
			Name:           "FamBot",
			About:          "Your family helper. Ask me anything!",
			IsBot:          true,
			StatusAudience: domain.AudienceNobody,
			ReadReceipts:   false,
			ShowLastSeen:   false,
		}
		if err := db.Create(&botUser).Error; err != nil {
			log.Fatal("bot create failed:", err)
		}
	} else if !botUser.IsBot {
		botUser.IsBot = true
		if err := db.Save(&botUser).Error; err != nil {
			log.Fatal("bot flag update failed:", err)
		}
	}
	log.Printf("Bot ready: id=%d (set BOT_USER_ID=%d)", botUser.ID, botUser.ID)

	// ================== FAMILY ==================
	log.Println("Creating demo family...")

	names := []struct {
		name  string
		email string
	}{
		{"Mom", "mom@famchat.local"},
		{"Dad", "dad@famchat.local"},
		{"Alex", "alex@famchat.local"},
	}
	for _, n := range names {
		var existing domain.User
		if db.Where("email = ?", n.email).First(&existing).Error == nil {
			continue
		}
		hash, _ := bcrypt.GenerateFromPassword([]byte("family123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:          n.email,
			PasswordHash:   string(hash),
			Name:           n.name,
			StatusAudience: domain.AudienceEveryone,
			ReadReceipts:   true,
			ShowLastSeen:   true,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal("user create failed:", err)
		}
		log.Printf("User created: %s / family123", n.email)
	}

	fmt.Println("Seed complete.")
}
