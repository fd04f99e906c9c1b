package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"comparsaGora/cmd/app"
	"comparsaGora/internal/config"
	handlers "comparsaGora/internal/handler"
	"comparsaGora/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.Admin.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	if db != nil {
		defer db.CloseDB()
	}

	handler := handlers.NewHandlers(services, cfg)

	// админский список заявок обновляется по этому сигналу
	services.Store.Subscribe("signups", func(collection string) {
		log.Printf("Получена новая заявка (коллекция %s)", collection)
	})

	// setting up routes
	router := mux.NewRouter()

	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)

	router.HandleFunc("/api/signups", handler.CreateSignup).Methods(http.MethodPost)
	router.HandleFunc("/api/signups", handler.ListSignups).Methods(http.MethodGet)
	router.HandleFunc("/api/signups/{id}", handler.DeleteSignup).Methods(http.MethodDelete)

	router.HandleFunc("/api/storage/usage", handler.StorageUsage).Methods(http.MethodGet)
	router.HandleFunc("/api/storage/clear", handler.ClearLocalStorage).Methods(http.MethodPost)

	router.HandleFunc("/api/{collection}", handler.GetContent).Methods(http.MethodGet)
	router.HandleFunc("/api/{collection}", handler.CreateContent).Methods(http.MethodPost)
	router.HandleFunc("/api/{collection}/{id}", handler.UpdateContent).Methods(http.MethodPut)
	router.HandleFunc("/api/{collection}/{id}", handler.DeleteContent).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
