package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"campusai/controllers"
	"campusai/models"
	"campusai/services"
	"campusai/storage"
	"campusai/utils"
)

// Server wires the router to the controller
type Server struct {
	router     *mux.Router
	port       string
	controller *controllers.Controller
	origins    []string
}

// NewServer creates a new server instance
func NewServer(port string, controller *controllers.Controller, origins []string) *Server {
	return &Server{
		router:     mux.NewRouter(),
		port:       port,
		controller: controller,
		origins:    origins,
	}
}

// setupRoutes configures all our endpoints
func (s *Server) setupRoutes() {
	s.router.Use(loggingMiddleware)
	s.controller.RegisterRoutes(s.router)
}

// Start runs the HTTP server until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", controllers.SessionHeader},
		ExposedHeaders: []string{controllers.SessionHeader},
	})

	if !strings.HasPrefix(s.port, ":") {
		s.port = ":" + s.port
	}

	server := &http.Server{
		Addr:              s.port,
		Handler:           c.Handler(s.router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", s.port)
	log.Printf("Visit http://localhost%s to chat with CampusAI", s.port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	cfg := utils.LoadConfig()

	port := flag.String("port", cfg.Port, "HTTP listen port")
	enableDiscord := flag.Bool("discord", cfg.Discord.Enabled, "start the Discord bot")
	flag.Parse()

	db, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	kb := services.LoadKnowledgeBase(cfg.KnowledgeXLSX)
	index, err := services.NewDocumentIndex(services.DefaultDocuments(kb))
	if err != nil {
		log.Fatalf("Failed to build document index: %v", err)
	}

	dispatcher := services.NewResponseDispatcher(kb, index)
	gateway := services.NewHTTPGateway(
		services.WithProviderTimeout(cfg.ProviderTimeout),
		services.WithBaseURL(models.ProviderGemini, cfg.GeminiBaseURL),
		services.WithBaseURL(models.ProviderOpenAI, cfg.OpenAIBaseURL),
		services.WithBaseURL(models.ProviderAnthropic, cfg.AnthropicBaseURL),
	)

	transcripts := services.NewTranscriptStore()
	chatbot := services.NewChatbot(kb, index, dispatcher, gateway, transcripts,
		services.WithTypingDelay(cfg.TypingDelay))

	sessions := services.NewSessionManager(db, storage.NewMemoryStore(), transcripts)
	settings := services.NewProviderSettings(db, cfg.Provider)
	discord := services.NewDiscordService(cfg.Discord, chatbot, cfg.Provider)

	controller := controllers.NewController(controllers.Config{
		Chatbot:  chatbot,
		Sessions: sessions,
		Settings: settings,
		Discord:  discord,
		DB:       db,
		College:  kb.College.Name,
		Provider: cfg.Provider,
	})

	if err := controller.StartServices(*enableDiscord); err != nil {
		log.Printf("Continuing without Discord: %v", err)
	}
	defer func() {
		if err := controller.StopServices(); err != nil {
			log.Printf("Error stopping services: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("CampusAI for %s: %d documents, provider %s", kb.College.Name, index.Len(), cfg.Provider.Kind)

	server := NewServer(*port, controller, cfg.AllowedOrigins)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
	log.Printf("Server stopped")
}
