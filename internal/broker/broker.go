package broker

import (
	"context"

	"go-stockcontrol-ws/internal/model"
)

// SyncBroker fans document changes out to live watchers. Publish carries the
// full snapshot; watchers replace their state wholesale with whatever arrives.
type SyncBroker interface {
	Publish(ctx context.Context, username string, snap model.Snapshot) error
	// Subscribe opens a watch for one username. The returned stop function
	// releases the watch; the channel closes once the watch ends.
	Subscribe(ctx context.Context, username string) (<-chan model.Snapshot, func(), error)
}
