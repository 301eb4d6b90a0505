package service

import (
	"time"

	"restaurant-pos/internal/microservices/reports/repository"
)

type Service struct {
	ReportsService ReportsServiceInterface
}

func New(db *repository.Repository, loc *time.Location) *Service {
	return &Service{
		ReportsService: NewReportsService(db.ReportsRepo, loc),
	}
}
