package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Sampa-07/cyber-training/auth"
	"github.com/Sampa-07/cyber-training/config"
	"github.com/Sampa-07/cyber-training/db"
	"github.com/Sampa-07/cyber-training/handlers"
	"github.com/Sampa-07/cyber-training/i18n"
	"github.com/gorilla/csrf"
	"github.com/joho/godotenv"
)

func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}

func main() {
	// Optional .env for local development; env vars win over config.json
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	if err := config.LoadConfig("config.json"); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := i18n.LoadTranslations(); err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	auth.InitStore()

	db.InitDB(config.AppConfig.DatabasePath)
	defer db.DB.Close()

	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Register application handlers
	handlers.RegisterHandlers(mux)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.ListenIP, config.AppConfig.ListenPort)
	log.Printf("Server starting on %s (%s)", addr, config.AppConfig.AppName)

	// CSRF protection over all HTML forms. The key is derived from the
	// session secret, a dedicated key would also work.
	csrfMiddleware := csrf.Protect(
		auth.DeriveKey(config.AppConfig.SessionKey, []byte("cybertrain-csrf")),
		csrf.Secure(config.AppConfig.ListenPort != 8080),
		csrf.Path("/"),
	)

	if err := http.ListenAndServe(addr, SecurityHeadersMiddleware(csrfMiddleware(mux))); err != nil {
		log.Fatal(err)
	}
}
