package bugg_test

import (
	"strings"
	"testing"
	"time"

	"bugg-go/internal/bugg"
	"bugg-go/internal/testutil"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2022-02-22T17:37:45.631Z", want: time.Date(2022, 2, 22, 17, 37, 45, 631000000, time.UTC)},
		{in: "2022-02-22T17:37:45Z", want: time.Date(2022, 2, 22, 17, 37, 45, 0, time.UTC)},
		{in: "2022-02-22T17:37:45+00:00", want: time.Date(2022, 2, 22, 17, 37, 45, 0, time.UTC)},
		{in: "2022-02-22T17:37:45.123456", want: time.Date(2022, 2, 22, 17, 37, 45, 123456000, time.UTC)},
		{in: "2022-02-22T19:37:45+02:00", want: time.Date(2022, 2, 22, 17, 37, 45, 0, time.UTC)},
		{in: "2022-02-22T17:37:45-0130", want: time.Date(2022, 2, 22, 19, 7, 45, 0, time.UTC)},
		{in: "2022-02-22 17:37:45", want: time.Date(2022, 2, 22, 17, 37, 45, 0, time.UTC)},
		{in: "2022-02-22T17:37", want: time.Date(2022, 2, 22, 17, 37, 0, 0, time.UTC)},
		{in: "2022-02-22T17Z", want: time.Date(2022, 2, 22, 17, 0, 0, 0, time.UTC)},
		{in: "2022-02-22", want: time.Date(2022, 2, 22, 0, 0, 0, 0, time.UTC)},
		{in: "2022-02-22T17:37:45+00", want: time.Date(2022, 2, 22, 17, 37, 45, 0, time.UTC)},
		{in: "2022-02-22T19:37:45.5+02", want: time.Date(2022, 2, 22, 17, 37, 45, 500000000, time.UTC)},
		{in: "2022-02-22T15:37-02", want: time.Date(2022, 2, 22, 17, 37, 0, 0, time.UTC)},
		{in: "", wantErr: true},
		{in: "recording", wantErr: true},
		{in: "2022-02-30T17:37:45Z", wantErr: true},
		{in: "2022-13-01T00:00:00Z", wantErr: true},
		{in: "2022-02-22T25:00:00Z", wantErr: true},
		{in: "2022-02-22T17:37:45ZZ", wantErr: true},
		{in: "2022-02-22T17-37-45Z", wantErr: true},
		{in: "22-02-22T17:37:45Z", wantErr: true},
		{in: "2022-02-22T7:37:45Z", wantErr: true},
		{in: "2022-02-22T7", wantErr: true},
		{in: "2022-02-22T17:7:45Z", wantErr: true},
		{in: "2022-02-22T17:37:5Z", wantErr: true},
		{in: "2022-2-22T17:37:45Z", wantErr: true},
		{in: "2022-02-22T17:37.5Z", wantErr: true},
		{in: "2022-02-22T17:37:45+2", wantErr: true},
		{in: "2022-02-22T17:37:45+02:0", wantErr: true},
		{in: "2022-02-22Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := bugg.ParseTimestamp(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimestampFromFileName_roundTrip(t *testing.T) {
	// Any accepted timestamp, with colons written as underscores, is a valid file name.
	stamps := []string{
		"2022-02-22T17:37:45.631Z",
		"2022-02-22T17:37:45.631",
		"2023-11-05T00:00:00+01:00",
		"2024-02-29T23:59:59Z",
		"2022-02-22T17:37:45+00",
	}
	for _, s := range stamps {
		name := strings.ReplaceAll(s, ":", "_") + bugg.AudioExt
		if _, err := bugg.TimestampFromFileName(name); err != nil {
			t.Errorf("TimestampFromFileName(%q) error = %v", name, err)
		}
	}

	for _, name := range []string{"REC0001.mp3", "2022-02-22T7_37_45.631Z.mp3", "2023-02-29T00_00_00Z.mp3", "2022-02-22T17_37_45.631Z.mp3.mp3"} {
		if _, err := bugg.TimestampFromFileName(name); err == nil {
			t.Errorf("TimestampFromFileName(%q) expected error", name)
		}
	}
}

func TestValidateFileNames(t *testing.T) {
	t.Run("collects valid recordings in listing order", func(t *testing.T) {
		card := testutil.NewSDCard("/sd", "p1", "c1")
		card.AddRecording("bugg_A", "2022-02-22T17_40_00.000Z.mp3", []byte("b"))
		card.AddRecording("bugg_A", "2022-02-22T17_37_45.631Z.mp3", []byte("a"))
		card.AddRecording("bugg_A", "notes.txt", []byte("ignored"))
		card.AddRecording("bugg_A", "2022-02-22T17_50_00Z.MP3", []byte("upper-case extension ignored"))
		card.AddRecording("bugg_B", "2022-02-23T08_00_00Z.mp3", []byte("c"))

		folders := []bugg.ConfigFolder{
			{DeviceID: "bugg_A", Path: card.ConfigDir("bugg_A")},
			{DeviceID: "bugg_B", Path: card.ConfigDir("bugg_B")},
		}

		files, err := bugg.ValidateFileNames(card.FS, folders)
		if err != nil {
			t.Fatalf("ValidateFileNames() error = %v", err)
		}

		want := []string{
			"/sd/audio/p1/bugg_A/conf_c1/2022-02-22T17_37_45.631Z.mp3",
			"/sd/audio/p1/bugg_A/conf_c1/2022-02-22T17_40_00.000Z.mp3",
			"/sd/audio/p1/bugg_B/conf_c1/2022-02-23T08_00_00Z.mp3",
		}
		if len(files) != len(want) {
			t.Fatalf("len(files) = %d, want %d", len(files), len(want))
		}
		for i, w := range want {
			if files[i].Path != w {
				t.Errorf("files[%d].Path = %q, want %q", i, files[i].Path, w)
			}
		}
		if files[2].DeviceID != "bugg_B" {
			t.Errorf("files[2].DeviceID = %q, want %q", files[2].DeviceID, "bugg_B")
		}
		wantTS := time.Date(2022, 2, 22, 17, 37, 45, 631000000, time.UTC)
		if !files[0].Timestamp.Equal(wantTS) {
			t.Errorf("files[0].Timestamp = %v, want %v", files[0].Timestamp, wantTS)
		}
	})

	t.Run("directories named like recordings are skipped", func(t *testing.T) {
		card := testutil.NewSDCard("/sd", "p1", "c1")
		card.FS.AddDirectory(card.ConfigDir("bugg_A") + "/odd.mp3")

		files, err := bugg.ValidateFileNames(card.FS, []bugg.ConfigFolder{{DeviceID: "bugg_A", Path: card.ConfigDir("bugg_A")}})
		if err != nil {
			t.Fatalf("ValidateFileNames() error = %v", err)
		}
		if len(files) != 0 {
			t.Errorf("len(files) = %d, want 0", len(files))
		}
	})

	t.Run("invalid name aborts", func(t *testing.T) {
		card := testutil.NewSDCard("/sd", "p1", "c1")
		card.AddRecording("bugg_A", "2022-02-22T17_37_45.631Z.mp3", []byte("a"))
		bad := card.AddRecording("bugg_A", "REC0001.mp3", []byte("b"))

		files, err := bugg.ValidateFileNames(card.FS, []bugg.ConfigFolder{{DeviceID: "bugg_A", Path: card.ConfigDir("bugg_A")}})
		if !bugg.IsKind(err, bugg.InvalidFileName) {
			t.Fatalf("ValidateFileNames() error = %v, want InvalidFileName", err)
		}
		if files != nil {
			t.Errorf("files = %+v, want nil", files)
		}
		for _, want := range []string{bad, bugg.FileNameExample} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error = %q, want it to mention %q", err, want)
			}
		}
	})

	t.Run("one-digit hour aborts", func(t *testing.T) {
		card := testutil.NewSDCard("/sd", "p1", "c1")
		bad := card.AddRecording("bugg_A", "2022-02-22T7_37_45.631Z.mp3", []byte("a"))

		_, err := bugg.ValidateFileNames(card.FS, []bugg.ConfigFolder{{DeviceID: "bugg_A", Path: card.ConfigDir("bugg_A")}})
		if !bugg.IsKind(err, bugg.InvalidFileName) {
			t.Fatalf("ValidateFileNames() error = %v, want InvalidFileName", err)
		}
		if !strings.Contains(err.Error(), bad) {
			t.Errorf("error = %q, want it to mention %q", err, bad)
		}
	})

	t.Run("hour-only offset is accepted", func(t *testing.T) {
		card := testutil.NewSDCard("/sd", "p1", "c1")
		card.AddRecording("bugg_A", "2022-02-22T17_37_45+00.mp3", []byte("a"))

		files, err := bugg.ValidateFileNames(card.FS, []bugg.ConfigFolder{{DeviceID: "bugg_A", Path: card.ConfigDir("bugg_A")}})
		if err != nil {
			t.Fatalf("ValidateFileNames() error = %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("len(files) = %d, want 1", len(files))
		}
	})
}
