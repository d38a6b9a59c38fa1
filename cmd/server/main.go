package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kidtutor/backend/internal/auth"
	"github.com/kidtutor/backend/internal/challenges"
	"github.com/kidtutor/backend/internal/database"
	"github.com/kidtutor/backend/internal/generator"
	"github.com/kidtutor/backend/internal/middleware"
	"github.com/kidtutor/backend/internal/profile"
	"github.com/kidtutor/backend/internal/progression"
	"github.com/kidtutor/backend/internal/tutor"
	"github.com/rs/cors"
)

func main() {
	// Optional .env for local dev; env vars win in deployment
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	gen := generator.NewGenerator()

	progressionStore := progression.NewStore(db)
	progressionService := progression.NewService(progressionStore)
	progressionHandler := progression.NewHandler(progressionService)

	challengeStore := challenges.NewStore(db)
	challengeService := challenges.NewService(challengeStore, progressionService, gen)
	challengeHandler := challenges.NewHandler(challengeService)

	profileStore := profile.NewStore(db)
	profileService := profile.NewService(profileStore, progressionService)
	profileHandler := profile.NewHandler(profileService)

	tutorService := tutor.NewService(profileService, progressionService, gen)
	tutorHandler := tutor.NewHandler(tutorService)

	authHandler := auth.NewHandler(db)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/progress", progressionHandler.GetProgress).Methods("GET")
	protected.HandleFunc("/progress/all", progressionHandler.GetAllProgress).Methods("GET")
	protected.HandleFunc("/attempts/challenge", progressionHandler.SubmitChallengeAttempt).Methods("POST")
	protected.HandleFunc("/attempts/prompt", progressionHandler.SubmitPromptAttempt).Methods("POST")

	protected.HandleFunc("/challenges/current", challengeHandler.GetCurrent).Methods("GET")
	protected.HandleFunc("/challenges/advance", challengeHandler.Advance).Methods("POST")
	protected.HandleFunc("/challenges/completed-levels", challengeHandler.CompletedLevels).Methods("GET")

	protected.HandleFunc("/profile", profileHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.SaveProfile).Methods("POST")
	protected.HandleFunc("/profile/status", profileHandler.Status).Methods("GET")
	protected.HandleFunc("/profile/quiz", profileHandler.SubmitIntroQuiz).Methods("POST")
	protected.HandleFunc("/subjects", profileHandler.ListSubjects).Methods("GET")

	protected.HandleFunc("/tutor/chat", tutorHandler.Chat).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s (generator: %s)", port, gen.ModelName())
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
