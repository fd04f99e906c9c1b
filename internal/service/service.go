package service

import (
	"comparsaGora/internal/config"
	"comparsaGora/internal/repository"
	"comparsaGora/internal/storage"
)

type Service struct {
	Store StoreService
	Image ImageService
	Auth  AuthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Store: NewStoreService(rep.Remote, rep.Local),
		Image: NewImageService(storage),
		Auth:  NewAuthService(cfg),
	}
}
