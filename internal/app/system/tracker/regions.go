package tracker

import (
	"context"
	"strings"

	"github.com/dalemusser/interno/internal/app/system/apperr"
	"github.com/dalemusser/interno/internal/app/system/changefeed"
	"github.com/dalemusser/interno/internal/app/system/inputval"
	"github.com/dalemusser/interno/internal/domain/models"
)

type regionRules struct {
	Name string `validate:"required,max=120" label:"Region name"`
}

// validateRegionName trims name and checks it. The label used for records
// with no region is reserved so the two groups never merge.
func validateRegionName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := firstError(inputval.Validate(regionRules{Name: name})); err != nil {
		return "", err
	}
	if strings.EqualFold(name, models.UnassignedRegion) {
		return "", apperr.Validation("name", `"`+models.UnassignedRegion+`" is reserved for internships with no region.`)
	}
	return name, nil
}

// ListRegions returns every region ordered by name.
func (s *Service) ListRegions(ctx context.Context) ([]models.Region, error) {
	regions, err := s.regions.List(ctx)
	if err != nil {
		return nil, apperr.Persistence("list regions", err)
	}
	return regions, nil
}

// GetRegion loads one region.
func (s *Service) GetRegion(ctx context.Context, id string) (models.Region, error) {
	r, err := s.regions.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.Region{}, apperr.Persistence("load region", err)
	}
	return r, nil
}

func (s *Service) CreateRegion(ctx context.Context, name string) (models.Region, error) {
	name, err := validateRegionName(name)
	if err != nil {
		return models.Region{}, err
	}
	r, err := s.regions.Create(ctx, name)
	if err != nil {
		return models.Region{}, apperr.Persistence("create region", err)
	}
	s.publish(ctx, changefeed.TableRegions, changefeed.OpInsert, r.ID)
	return r, nil
}

// UpdateRegion renames a region. Internships pick up the new name on their
// next read.
func (s *Service) UpdateRegion(ctx context.Context, id, name string) (models.Region, error) {
	name, err := validateRegionName(name)
	if err != nil {
		return models.Region{}, err
	}
	r, err := s.regions.Rename(ctx, id, name)
	if err != nil {
		return models.Region{}, apperr.Persistence("update region", err)
	}
	s.publish(ctx, changefeed.TableRegions, changefeed.OpUpdate, r.ID)
	return r, nil
}

// DeleteRegion removes a region; its internships become unassigned.
func (s *Service) DeleteRegion(ctx context.Context, id string) error {
	if err := s.regions.Delete(ctx, id); err != nil {
		return apperr.Persistence("delete region", err)
	}
	s.publish(ctx, changefeed.TableRegions, changefeed.OpDelete, id)
	return nil
}
