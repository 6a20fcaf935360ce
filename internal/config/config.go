package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Port() string { return getenv("PORT", "8080") }

// StorageType sélectionne le backend de persistance : "file" ou "mongo".
func StorageType() string { return getenv("STORAGE_TYPE", "file") }

// DataDir est le répertoire des fichiers JSON du backend "file".
func DataDir() string { return getenv("DATA_DIR", "data") }

func MongoURI() string    { return getenv("MONGO_URI", "mongodb://localhost:27017") }
func MongoDBName() string { return getenv("MONGO_DBNAME", "storefront") }

func RedisAddr() string     { return os.Getenv("REDIS_HOST") }
func RedisPassword() string { return os.Getenv("REDIS_PASSWORD") }

func ElasticURL() string      { return os.Getenv("ELASTIC_URL") }
func ElasticUser() string     { return os.Getenv("ELASTIC_USER") }
func ElasticPassword() string { return os.Getenv("ELASTIC_PASSWORD") }

func MinIOEndpoint() string  { return os.Getenv("MINIO_ENDPOINT") }
func MinIOAccessKey() string { return os.Getenv("MINIO_ACCESS_KEY") }
func MinIOSecretKey() string { return os.Getenv("MINIO_SECRET_KEY") }
func MinIOBucket() string    { return getenv("MINIO_BUCKET", "storefront-documents") }
func MinIOUseSSL() bool      { return os.Getenv("MINIO_USE_SSL") == "true" }

func JWTSecret() string { return getenv("JWT_SECRET", "super_secret") }

// AdminEmail est l'identité admin dérivée de la configuration. Toujours en
// minuscules pour éviter un .env mal renseigné.
func AdminEmail() string    { return strings.ToLower(os.Getenv("ADMIN_EMAIL")) }
func AdminPassword() string { return os.Getenv("ADMIN_PASS") }

func SMTPHost() string     { return os.Getenv("SMTP_HOST") }
func SMTPUsername() string { return os.Getenv("SMTP_USERNAME") }
func SMTPPassword() string { return os.Getenv("SMTP_PASSWORD") }
func MailFrom() string     { return getenv("MAIL_FROM", "noreply@storefront.local") }

func BaseURL() string { return getenv("BASE_URL", "http://localhost:8080") }

func SessionSecret() string { return getenv("SESSION_SECRET", "session_secret") }

func GoogleClientID() string     { return os.Getenv("GOOGLE_CLIENT_ID") }
func GoogleClientSecret() string { return os.Getenv("GOOGLE_CLIENT_SECRET") }
func GithubClientID() string     { return os.Getenv("GITHUB_CLIENT_ID") }
func GithubClientSecret() string { return os.Getenv("GITHUB_CLIENT_SECRET") }
