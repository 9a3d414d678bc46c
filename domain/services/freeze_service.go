package services

import (
	"context"
	"fmt"

	"scholarfund/domain/entities"
	"scholarfund/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type freezeService struct {
	scholarshipRepo interfaces.ScholarshipRepository
	ratingRepo      interfaces.RatingRepository
}

// NewFreezeService creates a new freeze service
func NewFreezeService(scholarshipRepo interfaces.ScholarshipRepository, ratingRepo interfaces.RatingRepository) interfaces.FreezeService {
	return &freezeService{
		scholarshipRepo: scholarshipRepo,
		ratingRepo:      ratingRepo,
	}
}

// ShouldFreeze evaluates the pure freeze predicate against the current
// aggregate: rated, and averaging below 3.00 on the hundredths scale. The
// persisted frozen flag is deliberately not consulted.
func (s *freezeService) ShouldFreeze(ctx context.Context, scholarshipID int64) (bool, error) {
	if _, err := s.mustGet(ctx, scholarshipID); err != nil {
		return false, err
	}
	aggregate, err := s.ratingRepo.GetAggregate(ctx, scholarshipID)
	if err != nil {
		return false, fmt.Errorf("failed to get reputation aggregate: %w", err)
	}
	return aggregate.ShouldFreeze(), nil
}

// Recompute overwrites the frozen flag with the predicate result. Runs after
// every rating, so the flag never stays stale past a rating event.
func (s *freezeService) Recompute(ctx context.Context, scholarshipID int64) (bool, error) {
	scholarship, err := s.mustGet(ctx, scholarshipID)
	if err != nil {
		return false, err
	}
	aggregate, err := s.ratingRepo.GetAggregate(ctx, scholarshipID)
	if err != nil {
		return false, fmt.Errorf("failed to get reputation aggregate: %w", err)
	}

	frozen := aggregate.ShouldFreeze()
	if err := s.scholarshipRepo.SetFrozen(ctx, scholarshipID, frozen); err != nil {
		return false, fmt.Errorf("failed to set frozen flag: %w", err)
	}

	if frozen != scholarship.Frozen {
		log.Infof("Scholarship %d freeze state changed: %v -> %v", scholarshipID, scholarship.Frozen, frozen)
	}

	return frozen, nil
}

// ManualSetFrozen is the administrative override. The flag may diverge from
// ShouldFreeze until the next rating triggers Recompute; observers treat that
// window as expected.
func (s *freezeService) ManualSetFrozen(ctx context.Context, scholarshipID int64, frozen bool) error {
	if _, err := s.mustGet(ctx, scholarshipID); err != nil {
		return err
	}
	if err := s.scholarshipRepo.SetFrozen(ctx, scholarshipID, frozen); err != nil {
		return fmt.Errorf("failed to set frozen flag: %w", err)
	}

	log.Warnf("Scholarship %d frozen flag manually set to %v", scholarshipID, frozen)

	return nil
}

func (s *freezeService) mustGet(ctx context.Context, scholarshipID int64) (*entities.Scholarship, error) {
	scholarship, err := s.scholarshipRepo.GetByID(ctx, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scholarship: %w", err)
	}
	if scholarship == nil {
		return nil, fmt.Errorf("scholarship %d: %w", scholarshipID, entities.ErrScholarshipNotFound)
	}
	return scholarship, nil
}
