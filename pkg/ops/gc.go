package ops

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bodega-dev/bodega/pkg/errors"
	"github.com/bodega-dev/bodega/pkg/storage"
	"github.com/bodega-dev/bodega/pkg/ticket"
)

// GCResult reports what a garbage collection run removed (or would remove,
// on a dry run).
type GCResult struct {
	Removed []string // ticket IDs, ascending
	Kept    []string // closed-but-referenced tickets that were spared
	DryRun  bool
}

// GC deletes closed tickets whose last update is older than age. Closed
// tickets still listed as a dep of a surviving ticket are kept so the graph
// does not grow dangling references. With dryRun set, nothing is deleted and
// the result shows what a real run would do. The scan-then-delete sequence
// runs under the repository lock.
func GC(store *storage.Store, age string, dryRun bool) (res *GCResult, err error) {
	err = store.WithLock(func() error {
		res, err = gc(store, age, dryRun)
		return err
	})
	return res, err
}

func gc(store *storage.Store, age string, dryRun bool) (*GCResult, error) {
	d, err := ParseAge(age)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().UTC().Add(-d)

	tickets, err := store.List()
	if err != nil {
		return nil, err
	}

	expired := make(map[string]bool)
	for _, t := range tickets {
		if t.Status == ticket.StatusClosed && t.Updated.Before(cutoff) {
			expired[t.ID] = true
		}
	}

	// A dep from any surviving ticket pins its target.
	referenced := make(map[string]bool)
	for _, t := range tickets {
		if expired[t.ID] {
			continue
		}
		for _, dep := range t.Deps {
			referenced[dep] = true
		}
	}

	result := &GCResult{DryRun: dryRun}
	for id := range expired {
		if referenced[id] {
			result.Kept = append(result.Kept, id)
			continue
		}
		result.Removed = append(result.Removed, id)
	}
	slices.Sort(result.Removed)
	slices.Sort(result.Kept)

	if dryRun {
		return result, nil
	}
	for _, id := range result.Removed {
		if err := store.Delete(id); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ParseAge parses a duration of the form "30d", "12h", or "45m". Days are a
// convenience unit the standard library does not provide.
func ParseAge(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, errors.New(errors.ErrCodeInvalidDuration, "invalid age %q (expected forms like 30d, 12h, 45m)", s)
	}

	unit := s[len(s)-1]
	n, err := strconv.Atoi(strings.TrimSpace(s[:len(s)-1]))
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidDuration, "invalid age %q (expected forms like 30d, 12h, 45m)", s)
	}

	switch unit {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidDuration, "invalid age unit %q (use d, h, or m)", string(unit))
	}
}
