package port

import (
	"context"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
)

type (
	runnerContextWg interface {
		Run(context.Context, *sync.WaitGroup)
	}

	closer interface {
		Close()
	}
)

// A CatalogSource supplies the catalog once at startup.
type CatalogSource interface {
	LoadCatalog(context.Context) (products []domain.Product, categories []string, err error)
}

// An ActivityRecorder accepts session activity. Record must not block.
type ActivityRecorder interface {
	Record(domain.ActivityEvent)
}

type ActivityProducer interface {
	ActivityRecorder
	runnerContextWg
	closer
}

type Timer interface {
	Stop() bool
}

// A Clock schedules one-shot callbacks. Tests substitute a virtual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
