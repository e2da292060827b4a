package exif

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid",
			input: "2023:07:04 10:30:00",
			want:  time.Date(2023, time.July, 4, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "trailing NUL padding",
			input: "2023:07:04 10:30:00\x00",
			want:  time.Date(2023, time.July, 4, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "dash separators",
			input:   "2023-07-04 10:30:00",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2023:13:04 10:30:00",
			wantErr: true,
		},
		{
			name:    "non-numeric field",
			input:   "2023:JU:04 10:30:00",
			wantErr: true,
		},
		{
			name:    "truncated",
			input:   "2023:07:04",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimestamp failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
