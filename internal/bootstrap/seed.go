package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/itjpay/billing-dashboard/internal/logging"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

// SeedDemoData loads the demo catalog into empty stores. It reports false
// when projects already exist.
func SeedDemoData(ctx context.Context, st *Stores, now time.Time) (bool, error) {
	existing, err := st.Projects.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	// Create prepends, so walk backwards to keep the seed order
	projects := seed.Projects()
	for i := len(projects) - 1; i >= 0; i-- {
		if err := st.Projects.Create(ctx, &projects[i]); err != nil {
			return false, fmt.Errorf("seed project %s: %w", projects[i].ID, err)
		}
	}
	for _, p := range seed.Plans() {
		if err := st.Plans.Create(ctx, &p); err != nil {
			return false, fmt.Errorf("seed plan %s: %w", p.ID, err)
		}
	}
	if err := st.Clients.Append(ctx, seed.Clients(now)...); err != nil {
		return false, fmt.Errorf("seed clients: %w", err)
	}
	for _, p := range seed.Payments() {
		if err := st.Payments.Add(ctx, &p); err != nil {
			return false, fmt.Errorf("seed payment %s: %w", p.ID, err)
		}
	}

	logging.New(ctx).Infof("bootstrap.seed", "seeded %d projects and %d payments", len(projects), len(seed.Payments()))
	return true, nil
}
