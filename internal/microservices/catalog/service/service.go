package service

import (
	"context"

	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/microservices/catalog/repository"
)

type ProductServiceInterface interface {
	Menu(ctx context.Context) ([]domain.Product, error)
}

type ProductService struct {
	db repository.ProductRepositoryInterface
}

func NewProductService(db repository.ProductRepositoryInterface) ProductServiceInterface {
	return &ProductService{db: db}
}

func (s *ProductService) Menu(ctx context.Context) ([]domain.Product, error) {
	return s.db.ListAvailable(ctx)
}

type Service struct {
	ProductService ProductServiceInterface
}

func New(db *repository.Repository) *Service {
	return &Service{
		ProductService: NewProductService(db.ProductRepo),
	}
}
