package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	qb "github.com/riskibarqy/footy-career/internal/platform/querybuilder"
)

const saveSlotSummaryColumns = "id, public_id, label, version, phase, player_name, season_year, round, created_at, updated_at, deleted_at"

type SaveSlotRepository struct {
	db *sqlx.DB
}

func NewSaveSlotRepository(db *sqlx.DB) *SaveSlotRepository {
	return &SaveSlotRepository{db: db}
}

func (r *SaveSlotRepository) Get(ctx context.Context, id string) (saveslot.Slot, bool, error) {
	query, args, err := qb.Select("*").
		From("save_slots").
		Where(qb.Eq("public_id", id)).
		Where(qb.IsNull("deleted_at")).
		Limit(1).
		ToSql()
	if err != nil {
		return saveslot.Slot{}, false, fmt.Errorf("build get save slot query: %w", err)
	}

	var row saveSlotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return saveslot.Slot{}, false, nil
		}
		return saveslot.Slot{}, false, fmt.Errorf("get save slot: %w", err)
	}

	return saveSlotFromRow(row), true, nil
}

// Save inserts on expectedVersion 0 and otherwise updates only the expected version.
// A soft-deleted slot id can be created again.
func (r *SaveSlotRepository) Save(ctx context.Context, slot saveslot.Slot, expectedVersion int64) (saveslot.Slot, error) {
	var (
		query string
		args  []any
		err   error
	)
	if expectedVersion == 0 {
		query, args, err = qb.InsertModel("save_slots", saveSlotInsertModel{
			PublicID:   slot.ID,
			Label:      nullString(slot.Label),
			Payload:    slot.Data,
			Version:    1,
			Phase:      slot.Phase,
			PlayerName: nullString(slot.PlayerName),
			SeasonYear: slot.Year,
			Round:      slot.Round,
		}, `ON CONFLICT (public_id) DO UPDATE SET
    label = EXCLUDED.label,
    payload = EXCLUDED.payload,
    version = 1,
    phase = EXCLUDED.phase,
    player_name = EXCLUDED.player_name,
    season_year = EXCLUDED.season_year,
    round = EXCLUDED.round,
    created_at = NOW(),
    updated_at = NOW(),
    deleted_at = NULL
WHERE save_slots.deleted_at IS NOT NULL
RETURNING version, created_at, updated_at`)
	} else {
		query, args, err = qb.Update("save_slots").
			Set("label", nullString(slot.Label)).
			Set("payload", slot.Data).
			Set("version", qb.Expr("version + 1")).
			Set("phase", slot.Phase).
			Set("player_name", nullString(slot.PlayerName)).
			Set("season_year", slot.Year).
			Set("round", slot.Round).
			Set("updated_at", qb.Expr("NOW()")).
			Where(qb.Eq("public_id", slot.ID)).
			Where(qb.Eq("version", expectedVersion)).
			Where(qb.IsNull("deleted_at")).
			Suffix("RETURNING version, created_at, updated_at").
			ToSql()
	}
	if err != nil {
		return saveslot.Slot{}, fmt.Errorf("build save slot query: %w", err)
	}

	var stamp saveSlotStampModel
	if err := r.db.GetContext(ctx, &stamp, query, args...); err != nil {
		if isNotFound(err) || isUniqueViolation(err) {
			return saveslot.Slot{}, saveslot.ErrVersionConflict
		}
		return saveslot.Slot{}, fmt.Errorf("save slot: %w", err)
	}

	slot.Version = stamp.Version
	slot.CreatedAt = stamp.CreatedAt
	slot.UpdatedAt = stamp.UpdatedAt
	return slot, nil
}

func (r *SaveSlotRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.Update("save_slots").
		Set("deleted_at", qb.Expr("NOW()")).
		Where(qb.Eq("public_id", id)).
		Where(qb.IsNull("deleted_at")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete save slot query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete save slot: %w", err)
	}
	return nil
}

func (r *SaveSlotRepository) List(ctx context.Context) ([]saveslot.Slot, error) {
	query, args, err := qb.Select(saveSlotSummaryColumns).
		From("save_slots").
		Where(qb.IsNull("deleted_at")).
		OrderBy("updated_at DESC", "public_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list save slots query: %w", err)
	}

	var rows []saveSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list save slots: %w", err)
	}

	out := make([]saveslot.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, saveSlotFromRow(row))
	}
	return out, nil
}

func saveSlotFromRow(row saveSlotTableModel) saveslot.Slot {
	return saveslot.Slot{
		ID:         row.PublicID,
		Label:      row.Label.String,
		Data:       row.Payload,
		Version:    row.Version,
		Phase:      row.Phase,
		PlayerName: row.PlayerName.String,
		Year:       row.SeasonYear,
		Round:      row.Round,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type HallOfFameRepository struct {
	db *sqlx.DB
}

func NewHallOfFameRepository(db *sqlx.DB) *HallOfFameRepository {
	return &HallOfFameRepository{db: db}
}

func (r *HallOfFameRepository) Record(ctx context.Context, record saveslot.HallOfFameRecord) error {
	query, args, err := qb.InsertModel("hall_of_fame", hallOfFameInsertModel{
		SlotID:      record.SlotID,
		Name:        record.Name,
		Position:    record.Position,
		RetiredYear: record.RetiredYear,
		Seasons:     record.Seasons,
		Matches:     record.Matches,
		Goals:       record.Goals,
		Awards:      record.Awards,
		Flags:       record.Flags,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert hall of fame query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert hall of fame: %w", err)
	}
	return nil
}

func (r *HallOfFameRepository) Top(ctx context.Context, limit int) ([]saveslot.HallOfFameRecord, error) {
	builder := qb.Select("*").
		From("hall_of_fame").
		OrderBy("matches DESC", "goals DESC", "id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select hall of fame query: %w", err)
	}

	var rows []hallOfFameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select hall of fame: %w", err)
	}

	out := make([]saveslot.HallOfFameRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, saveslot.HallOfFameRecord{
			SlotID:      row.SlotID,
			Name:        row.Name,
			Position:    row.Position,
			RetiredYear: row.RetiredYear,
			Seasons:     row.Seasons,
			Matches:     row.Matches,
			Goals:       row.Goals,
			Awards:      row.Awards,
			Flags:       row.Flags,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}
