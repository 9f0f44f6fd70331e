package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"kyn/internal/config"
	"kyn/internal/database"
	"kyn/internal/handlers"
	"kyn/internal/realtime"
	"kyn/internal/repository"
	"kyn/internal/security"
	"kyn/internal/service"
	"kyn/migrations"
)

func main() {
	cfg := config.Load()

	db, err := database.InitializeWithType(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	if err := db.RunMigrations(migrations.FS); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	realtimeSecret := cfg.RealtimeSecret
	if realtimeSecret == "" {
		// tickets only outlive a restart if the secret does; generate
		// one for dev setups that did not configure it
		realtimeSecret = randomSecret()
		log.Println("REALTIME_SECRET not set, generated an ephemeral one")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventRepo := repository.NewEventRepository(db)
	pollRepo := repository.NewPollRepository(db)
	triviaRepo := repository.NewTriviaRepository(db)
	healthRepo := repository.NewHealthRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	albumRepo := repository.NewAlbumRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	// Services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	if emailService.IsEnabled() {
		log.Printf("Email sending enabled via SES (%s)", cfg.AWSRegion)
	} else {
		log.Println("Email sending disabled (SES_FROM_EMAIL not set)")
	}

	authService := service.NewAuthService(userRepo, profileRepo, cfg.SessionDuration)
	profileService := service.NewProfileService(profileRepo)
	familyService := service.NewFamilyService(familyRepo, profileRepo, emailService)
	inviteService := service.NewInviteService(familyRepo, inviteRepo, cfg.AppBaseURL)
	switcher := service.NewSwitcher(selectionRepo, familyRepo)

	// Realtime hub
	hub := realtime.NewHub()

	// Handlers
	limiter := security.NewRateLimiter(cfg.RateLimitBurst, time.Minute)
	middleware := handlers.NewMiddleware(authService, profileService, limiter)
	authHandler := handlers.NewAuthHandler(authService, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	selectionHandler := handlers.NewSelectionHandler(switcher)
	configHandler := handlers.NewConfigHandler(cfg)
	feedHandler := handlers.NewFeedHandler(feedRepo, familyRepo, hub)
	messageHandler := handlers.NewMessageHandler(messageRepo, familyRepo, hub)
	taskHandler := handlers.NewTaskHandler(taskRepo, familyRepo, hub)
	eventHandler := handlers.NewEventHandler(eventRepo, familyRepo, hub)
	pollHandler := handlers.NewPollHandler(pollRepo, familyRepo, hub)
	triviaHandler := handlers.NewTriviaHandler(triviaRepo, familyRepo, hub)
	healthHandler := handlers.NewHealthHandler(healthRepo, familyRepo, hub)
	recipeHandler := handlers.NewRecipeHandler(recipeRepo, familyRepo, hub)
	storyHandler := handlers.NewStoryHandler(storyRepo, familyRepo, hub)
	albumHandler := handlers.NewAlbumHandler(albumRepo, familyRepo, hub)
	locationHandler := handlers.NewLocationHandler(locationRepo, familyRepo, hub)
	realtimeHandler := handlers.NewRealtimeHandler(familyRepo, hub, realtimeSecret, cfg.ClientOrigin)

	// Routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))

	// Profile
	mux.HandleFunc("GET /api/me/profile", middleware.RequireProfile(profileHandler.Get))
	mux.HandleFunc("PUT /api/me/profile", middleware.RequireAuth(profileHandler.Upsert))

	// Families and membership
	mux.HandleFunc("POST /api/families", middleware.RequireProfile(familyHandler.Create))
	mux.HandleFunc("GET /api/families", middleware.RequireProfile(familyHandler.List))
	mux.HandleFunc("GET /api/families/{familyID}/members", middleware.RequireProfile(familyHandler.Members))
	mux.HandleFunc("POST /api/families/{familyID}/invite-email", middleware.RequireProfile(familyHandler.InviteByEmail))
	mux.HandleFunc("GET /api/families/{familyID}/tree", middleware.RequireProfile(familyHandler.Tree))
	mux.HandleFunc("PUT /api/families/{familyID}/members/{memberID}/parent", middleware.RequireProfile(familyHandler.SetMemberParent))

	// Invites
	mux.HandleFunc("POST /api/families/{familyID}/invite-password", middleware.RequireProfile(inviteHandler.GeneratePassword))
	mux.HandleFunc("POST /api/families/{familyID}/invite-link", middleware.RequireProfile(inviteHandler.GenerateLink))
	mux.HandleFunc("POST /api/join", middleware.RequireProfile(middleware.RateLimit(inviteHandler.Join)))

	// Family selection
	mux.HandleFunc("GET /api/me/selected-family", middleware.RequireProfile(selectionHandler.Get))
	mux.HandleFunc("PUT /api/me/selected-family", middleware.RequireProfile(selectionHandler.Set))
	mux.HandleFunc("DELETE /api/me/selected-family", middleware.RequireProfile(selectionHandler.Clear))

	// Client feature gates
	mux.HandleFunc("GET /api/config/features", middleware.RequireAuth(configHandler.Features))

	// Feed
	mux.HandleFunc("POST /api/families/{familyID}/posts", middleware.RequireProfile(feedHandler.CreatePost))
	mux.HandleFunc("GET /api/families/{familyID}/posts", middleware.RequireProfile(feedHandler.ListPosts))
	mux.HandleFunc("POST /api/families/{familyID}/posts/{postID}/comments", middleware.RequireProfile(feedHandler.CreateComment))
	mux.HandleFunc("GET /api/families/{familyID}/posts/{postID}/comments", middleware.RequireProfile(feedHandler.ListComments))

	// Messages
	mux.HandleFunc("POST /api/families/{familyID}/messages", middleware.RequireProfile(messageHandler.Send))
	mux.HandleFunc("GET /api/families/{familyID}/messages", middleware.RequireProfile(messageHandler.Inbox))
	mux.HandleFunc("GET /api/families/{familyID}/messages/{profileID}", middleware.RequireProfile(messageHandler.Conversation))

	// Tasks
	mux.HandleFunc("POST /api/families/{familyID}/tasks", middleware.RequireProfile(taskHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/tasks", middleware.RequireProfile(taskHandler.List))
	mux.HandleFunc("PUT /api/families/{familyID}/tasks/{taskID}/completed", middleware.RequireProfile(taskHandler.SetCompleted))
	mux.HandleFunc("DELETE /api/families/{familyID}/tasks/{taskID}", middleware.RequireProfile(taskHandler.Delete))

	// Events
	mux.HandleFunc("POST /api/families/{familyID}/events", middleware.RequireProfile(eventHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/events", middleware.RequireProfile(eventHandler.List))
	mux.HandleFunc("PUT /api/families/{familyID}/events/{eventID}/rsvp", middleware.RequireProfile(eventHandler.RSVP))
	mux.HandleFunc("GET /api/families/{familyID}/events/{eventID}/rsvps", middleware.RequireProfile(eventHandler.ListRSVPs))

	// Polls
	mux.HandleFunc("POST /api/families/{familyID}/polls", middleware.RequireProfile(pollHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/polls", middleware.RequireProfile(pollHandler.List))
	mux.HandleFunc("PUT /api/families/{familyID}/polls/{pollID}/vote", middleware.RequireProfile(pollHandler.Vote))
	mux.HandleFunc("GET /api/families/{familyID}/polls/{pollID}/results", middleware.RequireProfile(pollHandler.Results))

	// Trivia
	mux.HandleFunc("POST /api/families/{familyID}/trivia/questions", middleware.RequireProfile(triviaHandler.CreateQuestion))
	mux.HandleFunc("GET /api/families/{familyID}/trivia/questions", middleware.RequireProfile(triviaHandler.ListQuestions))
	mux.HandleFunc("POST /api/families/{familyID}/trivia/questions/{questionID}/answer", middleware.RequireProfile(triviaHandler.Answer))
	mux.HandleFunc("GET /api/families/{familyID}/trivia/leaderboard", middleware.RequireProfile(triviaHandler.Leaderboard))

	// Health and fitness
	mux.HandleFunc("POST /api/families/{familyID}/health/logs", middleware.RequireProfile(healthHandler.LogEntry))
	mux.HandleFunc("GET /api/families/{familyID}/health/logs", middleware.RequireProfile(healthHandler.ListLogs))
	mux.HandleFunc("POST /api/families/{familyID}/health/challenges", middleware.RequireProfile(healthHandler.CreateChallenge))
	mux.HandleFunc("GET /api/families/{familyID}/health/challenges", middleware.RequireProfile(healthHandler.ListChallenges))
	mux.HandleFunc("POST /api/families/{familyID}/health/medical", middleware.RequireProfile(healthHandler.CreateMedicalRecord))
	mux.HandleFunc("GET /api/families/{familyID}/health/medical", middleware.RequireProfile(healthHandler.ListMedicalRecords))

	// Recipes
	mux.HandleFunc("POST /api/families/{familyID}/recipes", middleware.RequireProfile(recipeHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/recipes", middleware.RequireProfile(recipeHandler.List))

	// Stories
	mux.HandleFunc("POST /api/families/{familyID}/stories", middleware.RequireProfile(storyHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/stories", middleware.RequireProfile(storyHandler.List))

	// Albums
	mux.HandleFunc("POST /api/families/{familyID}/albums", middleware.RequireProfile(albumHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/albums", middleware.RequireProfile(albumHandler.List))
	mux.HandleFunc("POST /api/families/{familyID}/albums/{albumID}/media", middleware.RequireProfile(albumHandler.AddMedia))
	mux.HandleFunc("GET /api/families/{familyID}/albums/{albumID}/media", middleware.RequireProfile(albumHandler.ListMedia))

	// Locations
	mux.HandleFunc("POST /api/families/{familyID}/locations", middleware.RequireProfile(locationHandler.Create))
	mux.HandleFunc("GET /api/families/{familyID}/locations", middleware.RequireProfile(locationHandler.List))
	mux.HandleFunc("DELETE /api/families/{familyID}/locations/{locationID}", middleware.RequireProfile(locationHandler.Delete))

	// Realtime
	mux.HandleFunc("POST /api/realtime/ticket", middleware.RequireProfile(realtimeHandler.Ticket))
	mux.HandleFunc("GET /api/realtime", realtimeHandler.Connect)

	// The SPA runs on its own origin, so credentials must be allowed
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	handler := handlers.Logging(corsMiddleware.Handler(mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Failed to cleanup expired sessions: %v", err)
		}
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate realtime secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
