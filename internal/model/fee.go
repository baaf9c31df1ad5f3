package model

import (
	"github.com/google/uuid"
)

// FeeCatalog names one of the fee catalogs.
type FeeCatalog string

const (
	// FeeCatalogService holds the base fee per application type.
	FeeCatalogService     FeeCatalog = "service_fees"
	FeeCatalogGrooming    FeeCatalog = "grooming_services"
	FeeCatalogVaccination FeeCatalog = "vaccination_services"
)

func (c FeeCatalog) Valid() bool {
	switch c {
	case FeeCatalogService, FeeCatalogGrooming, FeeCatalogVaccination:
		return true
	}
	return false
}

// Fee is a titled entry in one of the fee catalogs.
type Fee struct {
	Base
	Title string  `db:"title" json:"title"`
	Fee   float64 `db:"fee" json:"fee"`
}

// UpdateFeeRequest changes a service fee; zero values keep the stored ones.
type UpdateFeeRequest struct {
	Title string  `json:"title" binding:"max=120"`
	Fee   float64 `json:"fee" binding:"min=0"`
}

// FeeMap indexes fees by id for add-on aggregation.
type FeeMap map[uuid.UUID]float64

func NewFeeMap(fees []*Fee) FeeMap {
	m := make(FeeMap, len(fees))
	for _, f := range fees {
		m[f.ID] = f.Fee
	}
	return m
}
