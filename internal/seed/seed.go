// Package seed makes sure the default subjects exist.
package seed

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"neetprep-backend/internal/logger"
	"neetprep-backend/internal/models"
)

type SubjectSeeder interface {
	InsertDefaultsIfEmpty(ctx context.Context, defaults []models.CreateSubjectRequest) (int, error)
}

// Initializer runs the default-data setup once per process. Concurrent callers
// share one in-flight run; a failed run can be retried.
type Initializer struct {
	subjects SubjectSeeder
	log      *logger.Logger

	group singleflight.Group
	mu    sync.Mutex
	done  bool
}

func NewInitializer(subjects SubjectSeeder, log *logger.Logger) *Initializer {
	return &Initializer{subjects: subjects, log: log}
}

func (i *Initializer) Done() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.done
}

func (i *Initializer) Initialize(ctx context.Context) error {
	if i.Done() {
		return nil
	}

	_, err, _ := i.group.Do("defaults", func() (interface{}, error) {
		if i.Done() {
			return nil, nil
		}
		created, err := i.subjects.InsertDefaultsIfEmpty(ctx, models.DefaultSubjects)
		if err != nil {
			return nil, fmt.Errorf("seed default subjects: %w", err)
		}
		if created > 0 {
			i.log.Info("Seeded default subjects", "count", created)
		}

		i.mu.Lock()
		i.done = true
		i.mu.Unlock()
		return nil, nil
	})
	return err
}
