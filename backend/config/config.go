package config

import (
	"encoding/json"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	ServerPort  string
	UploadDir   string
	BannedWords map[string][]string // locale -> lowercase terms
}

// Слова по умолчанию, если BANNED_WORDS не задан. Сравнение идёт по подстроке
// без учёта регистра, поэтому все термины должны быть в нижнем регистре.
var defaultBannedWords = map[string][]string{
	"ru": {"тупой", "идиот", "дурак", "придурок"},
	"en": {"stupid", "idiot", "moron", "dumbass"},
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "historium"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),
		BannedWords: loadBannedWords(),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// loadBannedWords читает JSON вида {"ru":["..."],"en":["..."]} из BANNED_WORDS.
func loadBannedWords() map[string][]string {
	raw, exists := os.LookupEnv("BANNED_WORDS")
	if !exists || raw == "" {
		return defaultBannedWords
	}

	var words map[string][]string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		log.Printf("Invalid BANNED_WORDS value, falling back to defaults: %v", err)
		return defaultBannedWords
	}

	return words
}
