package progress

import (
	"context"
	"fmt"

	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/rebus"
)

// Slot is the persisted state for one puzzle: solved yes/no plus the
// date/time the user picked for the unlocked experience.
type Slot struct {
	ID            int    `json:"id"`
	Solved        bool   `json:"solved"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
}

// Store persists the five fixed slots in a single shared record in the
// external record store. The record is created lazily on first write and
// patched in place after that; last writer wins.
type Store struct {
	log    *logger.Logger
	client airtable.Client
	table  string
}

func NewStore(log *logger.Logger, client airtable.Client, table string) *Store {
	return &Store{log: log.With("service", "ProgressStore"), client: client, table: table}
}

func solvedField(slot int) string { return fmt.Sprintf("rebus%d_solved", slot) }
func dateField(slot int) string   { return fmt.Sprintf("rebus%d_date", slot) }
func timeField(slot int) string   { return fmt.Sprintf("rebus%d_time", slot) }

// firstRecord returns the sole progress record, if one exists.
func (s *Store) firstRecord(ctx context.Context) (airtable.Record, bool, error) {
	res, err := s.client.List(ctx, s.table, airtable.ListParams{MaxRecords: 1, PageSize: 1})
	if err != nil {
		return airtable.Record{}, false, err
	}
	if len(res.Records) == 0 {
		return airtable.Record{}, false, nil
	}
	return res.Records[0], true, nil
}

// Get returns all five slots, defaulting to unsolved when no record exists.
func (s *Store) Get(ctx context.Context) ([]Slot, error) {
	slots := make([]Slot, rebus.SlotCount)
	for i := range slots {
		slots[i] = Slot{ID: i + 1}
	}

	record, ok, err := s.firstRecord(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return slots, nil
	}

	for i := range slots {
		id := slots[i].ID
		slots[i].Solved = boolField(record.Fields, solvedField(id))
		slots[i].ScheduledDate = stringField(record.Fields, dateField(id))
		slots[i].ScheduledTime = stringField(record.Fields, timeField(id))
	}
	return slots, nil
}

// Set patches only the given slot's fields, leaving the other slots
// untouched. The record is created if it does not exist yet.
func (s *Store) Set(ctx context.Context, slot int, solved bool, scheduledDate, scheduledTime string) error {
	if slot < 1 || slot > rebus.SlotCount {
		return fmt.Errorf("invalid slot %d", slot)
	}

	fields := map[string]any{
		solvedField(slot): solved,
	}
	if scheduledDate != "" {
		fields[dateField(slot)] = scheduledDate
	}
	if scheduledTime != "" {
		fields[timeField(slot)] = scheduledTime
	}

	record, ok, err := s.firstRecord(ctx)
	if err != nil {
		return err
	}
	if ok {
		_, err = s.client.Update(ctx, s.table, record.ID, fields, false)
		return err
	}
	_, err = s.client.Create(ctx, s.table, fields, false)
	return err
}

func boolField(fields map[string]any, name string) bool {
	switch v := fields[name].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "checked"
	case float64:
		return v != 0
	default:
		return false
	}
}

func stringField(fields map[string]any, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
