package bugg

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	// AudioExt is the only audio container uploaded. Matching is case-sensitive.
	AudioExt = ".mp3"

	// FileNameExample shows the expected audio file naming.
	FileNameExample = "2022-02-22T17_37_45.631Z.mp3"
)

// AudioFile is a validated recording ready to be planned for upload.
type AudioFile struct {
	Path      string
	DeviceID  string
	Timestamp time.Time
}

// isoShape is the accepted ISO-8601 extended form: a date, optionally a time
// with two-digit fields to hour, minute or second precision (fraction only
// after seconds), optionally an offset of Z, ±hh, ±hh:mm or ±hhmm.
// time.Parse alone would accept one-digit hours.
var isoShape = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}(?:[T ]\d{2}(?::\d{2}(?::\d{2}(?:\.\d+)?)?)?(?:Z|[+-]\d{2}(?::?\d{2})?)?)?$`)

// isoLayouts are the time.Parse layouts matching isoShape. Fractional seconds
// are accepted after the seconds field by time.Parse.
var isoLayouts = func() []string {
	dates := []string{"2006-01-02"}
	times := []string{"15:04:05", "15:04", "15"}
	zones := []string{"", "-07:00", "-0700", "-07"}

	var layouts []string
	for _, d := range dates {
		layouts = append(layouts, d)
		for _, sep := range []string{"T", " "} {
			for _, t := range times {
				for _, z := range zones {
					layouts = append(layouts, d+sep+t+z)
				}
			}
		}
	}
	return layouts
}()

func parseISO(s string) (time.Time, bool) {
	if !isoShape.MatchString(s) {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimestamp parses s as an ISO-8601 point in time, either directly or
// after rewriting a trailing "Z" as "+00:00".
func ParseTimestamp(s string) (time.Time, error) {
	if t, ok := parseISO(s); ok {
		return t, nil
	}
	if strings.HasSuffix(s, "Z") {
		if t, ok := parseISO(strings.TrimSuffix(s, "Z") + "+00:00"); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}

// TimestampFromFileName derives the recording timestamp from an audio file
// name: the extension is dropped and underscores become colons.
func TimestampFromFileName(name string) (time.Time, error) {
	candidate := strings.ReplaceAll(strings.TrimSuffix(name, AudioExt), "_", ":")
	return ParseTimestamp(candidate)
}

// ValidateFileNames lists the audio files of each config folder and checks
// that every name is a timestamp. The first invalid name aborts validation.
func ValidateFileNames(fsmgr FilesystemManager, folders []ConfigFolder) ([]AudioFile, error) {
	var files []AudioFile

	for _, folder := range folders {
		entries, err := fsmgr.ReadDir(folder.Path)
		if err != nil {
			return nil, &ValidationError{
				Kind:    LayoutMismatch,
				Path:    folder.Path,
				Message: fmt.Sprintf("Cannot list config folder %s.", folder.Path),
				Err:     err,
			}
		}

		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasSuffix(name, AudioExt) {
				continue
			}
			path := filepath.Join(folder.Path, name)
			if info, err := fsmgr.Stat(path); err != nil || !info.Mode().IsRegular() {
				continue
			}

			ts, err := TimestampFromFileName(name)
			if err != nil {
				return nil, &ValidationError{
					Kind: InvalidFileName,
					Path: path,
					Message: fmt.Sprintf("All the mp3 files need to have a valid ISO date as their name, "+
						"replacing colons ':' with underscores '_' (e.g. %s). This one doesn't: '%s'", FileNameExample, path),
				}
			}

			files = append(files, AudioFile{Path: path, DeviceID: folder.DeviceID, Timestamp: ts})
		}
	}

	return files, nil
}
