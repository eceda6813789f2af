package maintenance

import (
	"github.com/louisbranch/homerun/internal/services/round/storage"
)

// closableStore extends the round Store with a Close method for resource cleanup.
type closableStore interface {
	storage.Store
	Close() error
}
