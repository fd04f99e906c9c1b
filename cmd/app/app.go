package app

import (
	"log"

	"comparsaGora/internal/config"
	"comparsaGora/internal/database"
	"comparsaGora/internal/repository"
	"comparsaGora/internal/service"
	"comparsaGora/internal/storage"
)

// App - сборка зависимостей. Оба внешних бэкенда необязательны: без БД
// работаем только с локальным хранилищем, без MinIO изображения остаются
// встроенными в записи.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB (опционально)
	var db *database.DB
	if cfg.DB.IsConfigured() {
		var err error
		db, err = database.ConnectDB(cfg)
		if err != nil {
			log.Printf("БД недоступна, работаем только с локальным хранилищем: %v", err)
			db = nil
		}
	} else {
		log.Println("Удалённое хранилище не настроено, работаем только с локальным")
	}

	// локальное резервное хранилище обязательно
	local, err := repository.NewLocalRepository(cfg.LocalStore.Dir, cfg.LocalStore.QuotaBytes)
	if err != nil {
		log.Fatalf("Не удалось открыть локальное хранилище: %v", err)
	}

	// connection MinIO (опционально)
	var assetHost storage.Storage
	if cfg.MinIO.IsConfigured() {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			log.Printf("MinIO недоступен, изображения остаются встроенными: %v", err)
		} else {
			assetHost = minioClient
		}
	} else {
		log.Println("Хост изображений не настроен, изображения остаются встроенными")
	}

	// enabling dependencies
	var repo *repository.Repository
	if db != nil {
		repo = repository.NewRepository(db.DB, local)
	} else {
		repo = repository.NewRepository(nil, local)
	}

	services := service.NewService(repo, cfg, assetHost)

	return db, repo, services
}
