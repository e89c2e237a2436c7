package usecase

import (
	"context"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// CountryUseCase lectura del catálogo semilla de países.
type CountryUseCase struct {
	countryRepo repository.CountryRepository
}

// NewCountryUseCase construye el caso de uso.
func NewCountryUseCase(countryRepo repository.CountryRepository) *CountryUseCase {
	return &CountryUseCase{countryRepo: countryRepo}
}

// List devuelve todos los países.
func (uc *CountryUseCase) List(ctx context.Context) (*dto.CountryListResponse, error) {
	countries, err := uc.countryRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.CountryListResponse{Items: make([]dto.CountryResponse, 0, len(countries))}
	for _, c := range countries {
		out.Items = append(out.Items, dto.CountryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}
