package services

import (
	"database/sql"

	"inkwell/internal/domain"
	"inkwell/internal/repos"
)

type StockService struct {
	Prods *repos.ProductRepo
}

func NewStockService(prods *repos.ProductRepo) *StockService {
	return &StockService{Prods: prods}
}

// CheckAvailability maps a product's stock field to a status for the
// availability API. Stock is a plain counter with last-write-wins
// updates; there is no reservation.
func (s *StockService) CheckAvailability(productID string) (domain.Availability, error) {
	p, err := s.Prods.Get(productID)
	if err == sql.ErrNoRows {
		return domain.Availability{Status: "OUT_OF_STOCK"}, nil
	}
	if err != nil {
		return domain.Availability{}, err
	}
	if !p.Available {
		return domain.Availability{Status: "OUT_OF_STOCK"}, nil
	}

	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Stock}, nil
}
