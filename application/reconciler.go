package application

import (
	"context"
	"fmt"

	"scholarfund/domain/services"

	log "github.com/sirupsen/logrus"
)

// FreezeMismatch records a scholarship whose persisted frozen flag diverges
// from the freeze predicate. Divergence is legitimate after an administrative
// override, so a mismatch is an observation, not automatically an error.
type FreezeMismatch struct {
	ScholarshipID int64
	Frozen        bool
	ShouldFreeze  bool
}

// Reconciler sweeps all scholarships and compares each persisted frozen flag
// against the freeze predicate
type Reconciler struct {
	uowFactory UnitOfWorkFactory
}

// NewReconciler creates a new freeze-flag reconciler
func NewReconciler(uowFactory UnitOfWorkFactory) *Reconciler {
	return &Reconciler{uowFactory: uowFactory}
}

// Run scans every scholarship and returns the divergent ones. When fix is
// true, each divergent flag is overwritten with the predicate result inside
// the same transaction as the scan.
func (r *Reconciler) Run(ctx context.Context, fix bool) ([]FreezeMismatch, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin reconciliation: %w", err)
	}
	defer func() {
		if err := uow.Rollback(); err != nil {
			log.Errorf("Failed to rollback reconciliation: %v", err)
		}
	}()

	scholarships, err := uow.ScholarshipRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scholarships: %w", err)
	}

	freeze := services.NewFreezeService(uow.ScholarshipRepository(), uow.RatingRepository())

	var mismatches []FreezeMismatch
	for _, s := range scholarships {
		should, err := freeze.ShouldFreeze(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate freeze predicate for scholarship %d: %w", s.ID, err)
		}
		if should == s.Frozen {
			continue
		}

		log.Warnf("STATUS MISMATCH: scholarship %d has frozen=%v but predicate says %v", s.ID, s.Frozen, should)
		mismatches = append(mismatches, FreezeMismatch{
			ScholarshipID: s.ID,
			Frozen:        s.Frozen,
			ShouldFreeze:  should,
		})

		if fix {
			if _, err := freeze.Recompute(ctx, s.ID); err != nil {
				return nil, fmt.Errorf("failed to recompute frozen flag for scholarship %d: %w", s.ID, err)
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reconciliation: %w", err)
	}

	log.Infof("Reconciliation complete: %d scholarships scanned, %d mismatches (fix=%v)", len(scholarships), len(mismatches), fix)
	return mismatches, nil
}
