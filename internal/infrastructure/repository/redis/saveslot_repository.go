// Package redis stores save slots as redis hashes with an index sorted by update time.
package redis

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
)

const (
	fieldData    = "data"
	fieldVersion = "version"
	fieldMeta    = "meta"
)

// slotMeta is the listable part of a slot, kept apart from the payload.
type slotMeta struct {
	Label      string    `json:"label,omitempty"`
	Phase      string    `json:"phase"`
	PlayerName string    `json:"player_name,omitempty"`
	Year       int       `json:"year"`
	Round      int       `json:"round"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SaveSlotRepository struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewSaveSlotRepository(client goredis.UniversalClient, prefix string) *SaveSlotRepository {
	if prefix == "" {
		prefix = "footy"
	}
	return &SaveSlotRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *SaveSlotRepository) slotKey(id string) string {
	return r.prefix + ":slot:" + id
}

func (r *SaveSlotRepository) indexKey() string {
	return r.prefix + ":slots"
}

func (r *SaveSlotRepository) Get(ctx context.Context, id string) (saveslot.Slot, bool, error) {
	values, err := r.client.HGetAll(ctx, r.slotKey(id)).Result()
	if err != nil {
		return saveslot.Slot{}, false, fmt.Errorf("get save slot: %w", err)
	}
	if len(values) == 0 {
		return saveslot.Slot{}, false, nil
	}
	slot, err := decodeSlot(id, values)
	if err != nil {
		return saveslot.Slot{}, false, err
	}
	return slot, true, nil
}

// Save runs a WATCH/MULTI transaction so a concurrent writer makes it fail with a conflict.
func (r *SaveSlotRepository) Save(ctx context.Context, slot saveslot.Slot, expectedVersion int64) (saveslot.Slot, error) {
	key := r.slotKey(slot.ID)
	var stored saveslot.Slot

	txf := func(tx *goredis.Tx) error {
		current, err := tx.HMGet(ctx, key, fieldVersion, fieldMeta).Result()
		if err != nil {
			return fmt.Errorf("read save slot version: %w", err)
		}
		version, createdAt, err := currentVersion(current)
		if err != nil {
			return err
		}
		if version != expectedVersion {
			return saveslot.ErrVersionConflict
		}

		now := r.now().UTC()
		if version == 0 {
			createdAt = now
		}
		slot.Version = expectedVersion + 1
		slot.CreatedAt = createdAt
		slot.UpdatedAt = now
		fields, err := encodeSlot(slot)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.ZAdd(ctx, r.indexKey(), goredis.Z{Score: float64(now.UnixMilli()), Member: slot.ID})
			return nil
		})
		if err != nil {
			return err
		}
		stored = slot
		return nil
	}

	if err := r.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, goredis.TxFailedErr) || errors.Is(err, saveslot.ErrVersionConflict) {
			return saveslot.Slot{}, saveslot.ErrVersionConflict
		}
		return saveslot.Slot{}, fmt.Errorf("save slot: %w", err)
	}
	return stored, nil
}

func (r *SaveSlotRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, r.slotKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete save slot: %w", err)
	}
	return nil
}

func (r *SaveSlotRepository) List(ctx context.Context) ([]saveslot.Slot, error) {
	ids, err := r.client.ZRevRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list save slots: %w", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*goredis.SliceCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HMGet(ctx, r.slotKey(id), fieldVersion, fieldMeta)
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("list save slot metadata: %w", err)
		}
	}

	out := make([]saveslot.Slot, 0, len(ids))
	for i, id := range ids {
		values, err := cmds[i].Result()
		if err != nil || values[0] == nil {
			continue
		}
		slot, err := decodeSlot(id, map[string]string{
			fieldVersion: fmt.Sprint(values[0]),
			fieldMeta:    fmt.Sprint(values[1]),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, slot.Summary())
	}
	return out, nil
}

func currentVersion(values []any) (int64, time.Time, error) {
	if len(values) < 2 || values[0] == nil {
		return 0, time.Time{}, nil
	}
	raw, ok := values[0].(string)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("save slot version has type %T", values[0])
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse save slot version: %w", err)
	}
	var meta slotMeta
	if rawMeta, ok := values[1].(string); ok {
		if err := sonic.UnmarshalString(rawMeta, &meta); err != nil {
			return 0, time.Time{}, fmt.Errorf("decode save slot meta: %w", err)
		}
	}
	return version, meta.CreatedAt, nil
}

func encodeSlot(slot saveslot.Slot) (map[string]any, error) {
	meta, err := sonic.MarshalString(slotMeta{
		Label:      slot.Label,
		Phase:      slot.Phase,
		PlayerName: slot.PlayerName,
		Year:       slot.Year,
		Round:      slot.Round,
		CreatedAt:  slot.CreatedAt,
		UpdatedAt:  slot.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode save slot meta: %w", err)
	}
	return map[string]any{
		fieldData:    slot.Data,
		fieldVersion: strconv.FormatInt(slot.Version, 10),
		fieldMeta:    meta,
	}, nil
}

func decodeSlot(id string, values map[string]string) (saveslot.Slot, error) {
	version, err := strconv.ParseInt(values[fieldVersion], 10, 64)
	if err != nil {
		return saveslot.Slot{}, fmt.Errorf("parse save slot version: %w", err)
	}
	var meta slotMeta
	if err := sonic.UnmarshalString(values[fieldMeta], &meta); err != nil {
		return saveslot.Slot{}, fmt.Errorf("decode save slot meta: %w", err)
	}

	slot := saveslot.Slot{
		ID:         id,
		Label:      meta.Label,
		Version:    version,
		Phase:      meta.Phase,
		PlayerName: meta.PlayerName,
		Year:       meta.Year,
		Round:      meta.Round,
		CreatedAt:  meta.CreatedAt,
		UpdatedAt:  meta.UpdatedAt,
	}
	if data, ok := values[fieldData]; ok {
		slot.Data = []byte(data)
	}
	return slot, nil
}

type HallOfFameRepository struct {
	client goredis.UniversalClient
	key    string
}

func NewHallOfFameRepository(client goredis.UniversalClient, prefix string) *HallOfFameRepository {
	if prefix == "" {
		prefix = "footy"
	}
	return &HallOfFameRepository{client: client, key: prefix + ":hall_of_fame"}
}

func (r *HallOfFameRepository) Record(ctx context.Context, record saveslot.HallOfFameRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	raw, err := sonic.MarshalString(record)
	if err != nil {
		return fmt.Errorf("encode hall of fame record: %w", err)
	}
	if err := r.client.RPush(ctx, r.key, raw).Err(); err != nil {
		return fmt.Errorf("push hall of fame record: %w", err)
	}
	return nil
}

func (r *HallOfFameRepository) Top(ctx context.Context, limit int) ([]saveslot.HallOfFameRecord, error) {
	raws, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read hall of fame: %w", err)
	}
	out := make([]saveslot.HallOfFameRecord, 0, len(raws))
	for _, raw := range raws {
		var rec saveslot.HallOfFameRecord
		if err := sonic.UnmarshalString(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode hall of fame record: %w", err)
		}
		out = append(out, rec)
	}
	slices.SortStableFunc(out, func(a, b saveslot.HallOfFameRecord) int {
		if c := cmp.Compare(b.Matches, a.Matches); c != 0 {
			return c
		}
		return cmp.Compare(b.Goals, a.Goals)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
