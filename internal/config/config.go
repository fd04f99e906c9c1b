package config

import (
	"github.com/joho/godotenv"
	"log"
	"os"
	"strconv"
	"time"
)

// Placeholder - значение-заглушка: бэкенд с таким значением считается ненастроенным
const Placeholder = "CHANGE_ME"

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Admin struct {
	Username      string
	Password      string
	JWTSecretKey  string
	TokenDuration time.Duration
}

type LocalStore struct {
	Dir        string
	QuotaBytes int64
}

type Config struct {
	ServerPort int
	DB         DB
	MinIO      MinIO
	Admin      Admin
	LocalStore LocalStore
}

// IsConfigured - удалённое хранилище документов используется только при заданном хосте
func (d DB) IsConfigured() bool {
	return d.DbHOST != "" && d.DbHOST != Placeholder
}

// IsConfigured - хост изображений необязателен, заглушки означают "не настроен"
func (m MinIO) IsConfigured() bool {
	return m.Endpoint != "" && m.Endpoint != Placeholder &&
		m.AccessKey != "" && m.AccessKey != Placeholder
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 2 * time.Hour
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", ""),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "comparsa"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", ""),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		SecretKey:  getEnv("MINIO_SECRET_KEY", ""),
		BucketName: getEnv("MINIO_BUCKET_NAME", "images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadAdmin() Admin {
	return Admin{
		Username:      getEnv("ADMIN_USERNAME", "admin"),
		Password:      getEnv("ADMIN_PASSWORD", ""),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		TokenDuration: parseDuration(getEnv("ADMIN_TOKEN_DURATION", "2h")),
	}
}

func LoadLocalStore() LocalStore {
	return LocalStore{
		Dir: getEnv("LOCAL_STORE_DIR", "data"),
		// ~5MB, как квота localStorage в браузере
		QuotaBytes: getEnvAsInt64("LOCAL_STORE_QUOTA_BYTES", 5*1024*1024),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		DB:         LoadDB(),
		MinIO:      LoadMinIO(),
		Admin:      LoadAdmin(),
		LocalStore: LoadLocalStore(),
	}
}
