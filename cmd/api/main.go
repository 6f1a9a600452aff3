package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/partnergate/onboarding-backend/internal/modules/auth"
	"github.com/partnergate/onboarding-backend/internal/modules/certificate"
	"github.com/partnergate/onboarding-backend/internal/modules/document"
	"github.com/partnergate/onboarding-backend/internal/modules/partner"
	"github.com/partnergate/onboarding-backend/internal/modules/user"
	"github.com/partnergate/onboarding-backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	ctx := context.Background()
	memoryDriver := os.Getenv("STORAGE_DRIVER") == "memory"

	// ── Repositories & object store ─────────────────────────
	var (
		userRepo     user.Repository
		partnerRepo  partner.Repository
		approvalRepo partner.ApprovalRepository
		docRepo      document.Repository
		certRepo     certificate.Repository
		store        storage.ObjectStore
	)

	if memoryDriver {
		userRepo = user.NewMemoryRepository()
		partnerStore := partner.NewMemoryStore()
		partnerRepo = partnerStore
		approvalRepo = partnerStore
		docRepo = document.NewMemoryRepository()
		certRepo = certificate.NewMemoryRepository()
		store = storage.NewMemoryStore()
		fmt.Println("Running with in-memory storage")
	} else {
		db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Successfully connected to the database!")

		minioStore, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    envOr("MINIO_BUCKET", "certificates"),
			UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		})
		if err != nil {
			log.Fatal(err)
		}

		userRepo = user.NewPostgresRepository(db)
		partnerRepo = partner.NewPostgresRepository(db)
		approvalRepo = partner.NewApprovalPostgresRepository(db)
		docRepo = document.NewPostgresRepository(db)
		certRepo = certificate.NewPostgresRepository(db)
		store = minioStore
	}

	jwtKey := []byte(envOr("JWT_SECRET", "your-secret-key"))

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(auth.Middleware(jwtKey))

	// ── Identity ────────────────────────────────────────────
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)

	if os.Getenv("SEED_DEFAULT_USERS") == "true" {
		user.SeedDefaults(ctx, userService)
	}

	// ── Documents & certificates ────────────────────────────
	documentService := document.NewService(docRepo, store, partner.NewDirectory(partnerRepo))
	document.NewHandler(documentService).RegisterRoutes(router)

	certificateService := certificate.NewService(certRepo, store)
	certificate.NewHandler(certificateService).RegisterRoutes(router)

	// ── Partners, approvals & stats ─────────────────────────
	partnerService := partner.NewService(partnerRepo, approvalRepo, documentService)
	partner.NewHandler(partnerService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := envOr("APP_PORT", "8080")
	fmt.Printf("Onboarding API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
