package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppEnv    string `yaml:"APP_ENV"`
	AppPort   string `yaml:"APP_PORT"`
	AppOrigin string `yaml:"APP_ORIGIN"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	// Backend-as-a-service auth
	SupabaseURL       string `yaml:"SUPABASE_URL"`
	SupabaseAnonKey   string `yaml:"SUPABASE_ANON_KEY"`
	SupabaseJWTSecret string `yaml:"SUPABASE_JWT_SECRET"`

	// Local persistence
	LocalStorePath string `yaml:"LOCAL_STORE_PATH"`
	LocalStoreKey  string `yaml:"LOCAL_STORE_KEY"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`
}

var config Config

var configKeys = map[string]*string{
	"APP_ENV":             &config.AppEnv,
	"APP_PORT":            &config.AppPort,
	"APP_ORIGIN":          &config.AppOrigin,
	"DB_USER":             &config.DBUser,
	"DB_NAME":             &config.DBName,
	"DB_PASSWORD":         &config.DBPassword,
	"DB_PORT":             &config.DBPort,
	"DB_HOST":             &config.DBHost,
	"DB_SSLMODE":          &config.DBSSLMode,
	"SUPABASE_URL":        &config.SupabaseURL,
	"SUPABASE_ANON_KEY":   &config.SupabaseAnonKey,
	"SUPABASE_JWT_SECRET": &config.SupabaseJWTSecret,
	"LOCAL_STORE_PATH":    &config.LocalStorePath,
	"LOCAL_STORE_KEY":     &config.LocalStoreKey,
	"AWS_S3_BUCKET":       &config.AWSS3Bucket,
	"AWS_S3_REGION":       &config.AWSS3Region,
	"AWS_ACCESS_KEY":      &config.AWSAccessKey,
	"AWS_SECRET_KEY":      &config.AWSSecretKey,
	"GEMINI_API_KEY":      &config.GeminiAPIKey,
	"GEMINI_MODEL":        &config.GeminiModel,
}

func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

// LoadConfigFrom reads .env, then the YAML file at path. Environment
// variables win over YAML values.
func LoadConfigFrom(path string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %s\n", err)
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for key, field := range configKeys {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}
	applyDefaults()
}

func applyDefaults() {
	if config.AppEnv == "" {
		config.AppEnv = "development"
	}
	if config.AppPort == "" {
		config.AppPort = "3000"
	}
	if config.AppOrigin == "" {
		config.AppOrigin = "http://localhost:" + config.AppPort
	}
	if config.DBSSLMode == "" {
		config.DBSSLMode = "disable"
	}
	if config.LocalStorePath == "" {
		config.LocalStorePath = "./data/local-store.json"
	}
	if config.GeminiModel == "" {
		config.GeminiModel = "gemini-2.0-flash"
	}
}

func GetConfig(key string) string {
	if field, ok := configKeys[key]; ok {
		return *field
	}
	return ""
}

// SetConfig overrides a single key, mostly for tests.
func SetConfig(key, value string) {
	if field, ok := configKeys[key]; ok {
		*field = value
	}
}
