package v1

import (
	"errors"
	"testing"
	"time"

	"github.com/aevon-lab/timesheet/internal/core/storage"
	"github.com/aevon-lab/timesheet/internal/core/worktime"
)

func TestWorkInterval_Validation(t *testing.T) {
	tests := []struct {
		name     string
		interval WorkInterval
		wantErr  string
	}{
		{
			name: "valid interval with all fields",
			interval: WorkInterval{
				ID:           "iv_1",
				SubjectRef:   "user:alice",
				LocationRef:  "office:sthlm",
				StartInstant: "2024-05-06T08:00:00Z",
				EndInstant:   "2024-05-06T16:00:00Z",
			},
		},
		{
			name: "valid interval without id",
			interval: WorkInterval{
				SubjectRef:   "user:alice",
				StartInstant: "2024-05-06T08:00:00Z",
				EndInstant:   "2024-05-06T16:00:00Z",
			},
		},
		{
			name: "missing subject_ref",
			interval: WorkInterval{
				StartInstant: "2024-05-06T08:00:00Z",
				EndInstant:   "2024-05-06T16:00:00Z",
			},
			wantErr: "subject_ref is required",
		},
		{
			name: "blank start_instant",
			interval: WorkInterval{
				SubjectRef:   "user:alice",
				StartInstant: "  ",
				EndInstant:   "2024-05-06T16:00:00Z",
			},
			wantErr: "start_instant is required",
		},
		{
			name: "missing end_instant",
			interval: WorkInterval{
				SubjectRef:   "user:alice",
				StartInstant: "2024-05-06T08:00:00Z",
			},
			wantErr: "end_instant is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.interval.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestWorkInterval_ToDomain(t *testing.T) {
	b, err := worktime.NewBasis("Europe/Stockholm")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("offsets are normalized to UTC", func(t *testing.T) {
		iv, err := WorkInterval{
			ID:           "iv_1",
			SubjectRef:   "user:alice",
			StartInstant: "2024-05-06T08:00:00+02:00",
			EndInstant:   "2024-05-06T16:30:00+02:00",
		}.ToDomain(b)
		if err != nil {
			t.Fatalf("ToDomain() error: %v", err)
		}
		if !iv.Start.Equal(time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start %s", iv.Start)
		}
		if iv.Start.Location() != time.UTC {
			t.Errorf("start should be UTC, got %s", iv.Start.Location())
		}
		if iv.Elapsed() != 8*time.Hour+30*time.Minute {
			t.Errorf("unexpected elapsed %s", iv.Elapsed())
		}
	})

	t.Run("unparsable instant", func(t *testing.T) {
		_, err := WorkInterval{
			SubjectRef:   "user:alice",
			StartInstant: "yesterday",
			EndInstant:   "2024-05-06T16:00:00Z",
		}.ToDomain(b)
		if !errors.Is(err, worktime.ErrInvalidTimeInput) {
			t.Fatalf("expected ErrInvalidTimeInput, got %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := WorkInterval{
			SubjectRef:   "user:alice",
			StartInstant: "2024-05-06T16:00:00Z",
			EndInstant:   "2024-05-06T08:00:00Z",
		}.ToDomain(b)
		if !errors.Is(err, worktime.ErrNegativeDuration) {
			t.Fatalf("expected ErrNegativeDuration, got %v", err)
		}
	})

	t.Run("zero length is accepted", func(t *testing.T) {
		_, err := WorkInterval{
			SubjectRef:   "user:alice",
			StartInstant: "2024-05-06T08:00:00Z",
			EndInstant:   "2024-05-06T08:00:00Z",
		}.ToDomain(b)
		if err != nil {
			t.Fatalf("ToDomain() error: %v", err)
		}
	})
}

func TestFromDomain(t *testing.T) {
	recorded := time.Date(2024, 5, 7, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	rec := storage.IntervalRecord{
		Interval: worktime.WorkInterval{
			ID:          "iv_1",
			SubjectRef:  "user:alice",
			LocationRef: "office:sthlm",
			Start:       time.Date(2024, 5, 6, 6, 0, 0, 0, time.UTC),
			End:         time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC),
		},
		RecordedAt: recorded,
		IngestSeq:  42,
	}

	out := FromDomain(rec)
	if out.StartInstant != "2024-05-06T06:00:00Z" || out.EndInstant != "2024-05-06T14:00:00Z" {
		t.Errorf("unexpected instants %q - %q", out.StartInstant, out.EndInstant)
	}
	if out.RecordedAt == nil || !out.RecordedAt.Equal(recorded) || out.RecordedAt.Location() != time.UTC {
		t.Errorf("unexpected recorded_at %v", out.RecordedAt)
	}
	if out.LocationRef != "office:sthlm" {
		t.Errorf("unexpected location_ref %q", out.LocationRef)
	}

	if FromDomain(storage.IntervalRecord{}).RecordedAt != nil {
		t.Errorf("zero RecordedAt should be omitted")
	}
}
