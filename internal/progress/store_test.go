package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/rebus"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

type fakeClient struct {
	records []airtable.Record
	listErr error

	created   map[string]any
	updated   map[string]any
	updatedID string
}

func (f *fakeClient) List(_ context.Context, _ string, _ airtable.ListParams) (airtable.ListResult, error) {
	if f.listErr != nil {
		return airtable.ListResult{}, f.listErr
	}
	return airtable.ListResult{Records: f.records}, nil
}

func (f *fakeClient) Create(_ context.Context, _ string, fields map[string]any, _ bool) (airtable.Record, error) {
	f.created = fields
	return airtable.Record{ID: "recNew", Fields: fields}, nil
}

func (f *fakeClient) Update(_ context.Context, _ string, recordID string, fields map[string]any, _ bool) (airtable.Record, error) {
	f.updatedID = recordID
	f.updated = fields
	return airtable.Record{ID: recordID, Fields: fields}, nil
}

func (f *fakeClient) Delete(_ context.Context, _ string, _ string) error {
	return nil
}

func TestGetDefaultsWhenNoRecord(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestLogger(t), &fakeClient{}, "tblProgress")
	slots, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(slots) != rebus.SlotCount {
		t.Fatalf("got %d slots, want %d", len(slots), rebus.SlotCount)
	}
	for i, slot := range slots {
		if slot.ID != i+1 || slot.Solved || slot.ScheduledDate != "" || slot.ScheduledTime != "" {
			t.Fatalf("slot %d not defaulted: %+v", i, slot)
		}
	}
}

func TestGetReadsRecordFields(t *testing.T) {
	t.Parallel()

	client := &fakeClient{records: []airtable.Record{{
		ID: "rec1",
		Fields: map[string]any{
			"rebus1_solved": true,
			"rebus1_date":   "2026-01-10",
			"rebus1_time":   "18:00",
			"rebus3_solved": "checked",
			"rebus4_solved": float64(1),
		},
	}}}

	store := NewStore(newTestLogger(t), client, "tblProgress")
	slots, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if !slots[0].Solved || slots[0].ScheduledDate != "2026-01-10" || slots[0].ScheduledTime != "18:00" {
		t.Fatalf("slot 1 = %+v", slots[0])
	}
	if slots[1].Solved {
		t.Fatalf("slot 2 should be unsolved: %+v", slots[1])
	}
	// Checkbox fields come back in whatever shape the store chose.
	if !slots[2].Solved || !slots[3].Solved {
		t.Fatalf("coerced solved flags wrong: %+v %+v", slots[2], slots[3])
	}
}

func TestGetPropagatesListError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{listErr: errors.New("store down")}
	store := NewStore(newTestLogger(t), client, "tblProgress")
	if _, err := store.Get(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSetPatchesExistingRecord(t *testing.T) {
	t.Parallel()

	client := &fakeClient{records: []airtable.Record{{ID: "rec1", Fields: map[string]any{}}}}
	store := NewStore(newTestLogger(t), client, "tblProgress")

	if err := store.Set(context.Background(), 2, true, "2026-01-10", "18:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if client.created != nil {
		t.Fatal("should patch, not create")
	}
	if client.updatedID != "rec1" {
		t.Fatalf("updated record = %q", client.updatedID)
	}

	want := map[string]any{
		"rebus2_solved": true,
		"rebus2_date":   "2026-01-10",
		"rebus2_time":   "18:00",
	}
	if len(client.updated) != len(want) {
		t.Fatalf("updated fields = %v, want only slot 2 fields", client.updated)
	}
	for k, v := range want {
		if client.updated[k] != v {
			t.Fatalf("field %s = %v, want %v", k, client.updated[k], v)
		}
	}
}

func TestSetCreatesRecordWhenAbsent(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store := NewStore(newTestLogger(t), client, "tblProgress")

	if err := store.Set(context.Background(), 5, true, "", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if client.updated != nil {
		t.Fatal("should create, not patch")
	}
	if len(client.created) != 1 || client.created["rebus5_solved"] != true {
		t.Fatalf("created fields = %v", client.created)
	}
}

func TestSetRejectsBadSlot(t *testing.T) {
	t.Parallel()

	store := NewStore(newTestLogger(t), &fakeClient{}, "tblProgress")
	for _, slot := range []int{0, -1, rebus.SlotCount + 1} {
		if err := store.Set(context.Background(), slot, true, "", ""); err == nil {
			t.Fatalf("Set(%d) should fail", slot)
		}
	}
}
