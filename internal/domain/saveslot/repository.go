package saveslot

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (Slot, bool, error)
	// Save writes slot if the stored version equals expectedVersion. An expectedVersion
	// of 0 creates the slot. It returns the stored slot with its new version.
	Save(ctx context.Context, slot Slot, expectedVersion int64) (Slot, error)
	Delete(ctx context.Context, id string) error
	// List returns slot summaries ordered by most recent update.
	List(ctx context.Context) ([]Slot, error)
}

type HallOfFameRepository interface {
	Record(ctx context.Context, record HallOfFameRecord) error
	Top(ctx context.Context, limit int) ([]HallOfFameRecord, error)
}
