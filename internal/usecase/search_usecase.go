package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yourusername/carpet-retail-bot/internal/domain/apperr"
	"github.com/yourusername/carpet-retail-bot/internal/domain/entity"
	"github.com/yourusername/carpet-retail-bot/internal/domain/repository"
)

// SearchUseCase drives the progressive carpet filter flow. The filter
// state itself lives in the caller's conversation; every method takes it
// explicitly and the engine stays stateless.
type SearchUseCase interface {
	// FacetView computes the selectable options of one facet conditioned
	// on every OTHER active constraint, plus the total match count under
	// the full filter set (the viewed facet included).
	FacetView(ctx context.Context, filters *entity.CarpetFilters, facet entity.Facet) (*entity.FilterResults, error)

	// ToggleValue flips one value in or out of the facet's selection.
	ToggleValue(filters *entity.CarpetFilters, facet entity.Facet, value string) error

	// ClearFacet drops every selection of one facet.
	ClearFacet(filters *entity.CarpetFilters, facet entity.Facet) error

	// ClearAll resets the whole filter state.
	ClearAll(filters *entity.CarpetFilters)

	// Count returns the match count under the full filter set.
	Count(ctx context.Context, filters *entity.CarpetFilters) (int64, error)

	// Results returns matching carpets up to the configured limit,
	// together with the full match count.
	Results(ctx context.Context, filters *entity.CarpetFilters) ([]entity.Carpet, int64, error)
}

type searchUseCase struct {
	carpets       repository.CarpetRepository
	onlyAvailable bool
	resultsLimit  int
	log           zerolog.Logger
}

// NewSearchUseCase builds the filter engine. onlyAvailable excludes
// out-of-stock carpets from options, counts and results alike.
func NewSearchUseCase(carpets repository.CarpetRepository, onlyAvailable bool, resultsLimit int, logg zerolog.Logger) SearchUseCase {
	return &searchUseCase{
		carpets:       carpets,
		onlyAvailable: onlyAvailable,
		resultsLimit:  resultsLimit,
		log:           logg.With().Str("component", "search").Logger(),
	}
}

func (u *searchUseCase) FacetView(ctx context.Context, filters *entity.CarpetFilters, facet entity.Facet) (*entity.FilterResults, error) {
	if !facet.Valid() {
		return nil, apperr.InvalidArgumentf("unknown facet %q", facet)
	}

	// The facet's own selections never narrow its option list, otherwise
	// picking one value would hide the others.
	options, err := u.carpets.FacetOptions(ctx, facet, filters.WithoutFacet(facet), u.onlyAvailable)
	if err != nil {
		return nil, err
	}
	for i := range options {
		options[i].Selected = filters.Selected(facet, options[i].Value)
	}

	total, err := u.carpets.CountFiltered(ctx, filters, u.onlyAvailable)
	if err != nil {
		return nil, err
	}

	return &entity.FilterResults{
		Facet:        facet,
		Options:      options,
		TotalCarpets: total,
	}, nil
}

func (u *searchUseCase) ToggleValue(filters *entity.CarpetFilters, facet entity.Facet, value string) error {
	if !filters.Toggle(facet, value) {
		return apperr.InvalidArgumentf("unknown facet %q", facet)
	}
	return nil
}

func (u *searchUseCase) ClearFacet(filters *entity.CarpetFilters, facet entity.Facet) error {
	if !filters.Clear(facet) {
		return apperr.InvalidArgumentf("unknown facet %q", facet)
	}
	return nil
}

func (u *searchUseCase) ClearAll(filters *entity.CarpetFilters) {
	filters.ClearAll()
}

func (u *searchUseCase) Count(ctx context.Context, filters *entity.CarpetFilters) (int64, error) {
	return u.carpets.CountFiltered(ctx, filters, u.onlyAvailable)
}

func (u *searchUseCase) Results(ctx context.Context, filters *entity.CarpetFilters) ([]entity.Carpet, int64, error) {
	total, err := u.carpets.CountFiltered(ctx, filters, u.onlyAvailable)
	if err != nil {
		return nil, 0, err
	}
	carpets, err := u.carpets.Search(ctx, filters, u.onlyAvailable, u.resultsLimit)
	if err != nil {
		return nil, 0, err
	}
	u.log.Debug().Int64("total", total).Int("returned", len(carpets)).Msg("search results computed")
	return carpets, total, nil
}
