package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// ErrInvalidSettings is returned by Save for values that would break the
// lifecycle (negative window, no verticles).
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsFile is a worklog.SettingsSource backed by a JSON file. The file
// is read on every call, so edits by an admin (through Save or by hand)
// apply to the next request without a restart.
type SettingsFile struct {
	Path string
	Log  logrus.FieldLogger

	mu sync.Mutex // serializes Save
}

var _ worklog.SettingsSource = (*SettingsFile)(nil)

// NewSettingsFile returns a source reading path.
func NewSettingsFile(path string, log logrus.FieldLogger) *SettingsFile {
	return &SettingsFile{Path: path, Log: log}
}

// settingsDoc mirrors the file. Pointers tell "absent" from zero, since a
// window of 0 days is a valid setting.
type settingsDoc struct {
	EditTimeLimitDays *int     `json:"editTimeLimitDays,omitempty"`
	Verticles         []string `json:"verticles,omitempty"`
}

// Current reads the file. A missing file yields worklog.DefaultSettings.
// Absent or unusable fields fall back to their defaults.
func (f *SettingsFile) Current(_ context.Context) (worklog.Settings, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return worklog.DefaultSettings(), nil
	}
	if err != nil {
		return worklog.Settings{}, fmt.Errorf("reading settings file %s: %w", f.Path, err)
	}

	var doc settingsDoc
	if err := json.Unmarshal(stripLineComments(data), &doc); err != nil {
		return worklog.Settings{}, fmt.Errorf("parsing settings file %s: %w", f.Path, err)
	}

	st := worklog.DefaultSettings()
	if doc.EditTimeLimitDays != nil {
		if *doc.EditTimeLimitDays < 0 {
			f.logger().WithFields(logrus.Fields{
				"module": "config",
				"path":   f.Path,
				"value":  *doc.EditTimeLimitDays,
			}).Warn("negative editTimeLimitDays in settings file, using default")
		} else {
			st.EditTimeLimitDays = *doc.EditTimeLimitDays
		}
	}
	if verticles := cleanVerticles(doc.Verticles); len(verticles) > 0 {
		st.Verticles = verticles
	}
	return st, nil
}

// Save validates st and replaces the file atomically.
func (f *SettingsFile) Save(_ context.Context, st worklog.Settings) (worklog.Settings, error) {
	if st.EditTimeLimitDays < 0 {
		return worklog.Settings{}, fmt.Errorf("%w: editTimeLimitDays must not be negative", ErrInvalidSettings)
	}
	st.Verticles = cleanVerticles(st.Verticles)
	if len(st.Verticles) == 0 {
		return worklog.Settings{}, fmt.Errorf("%w: at least one verticle is required", ErrInvalidSettings)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	days := st.EditTimeLimitDays
	data, err := json.MarshalIndent(settingsDoc{EditTimeLimitDays: &days, Verticles: st.Verticles}, "", "  ")
	if err != nil {
		return worklog.Settings{}, err
	}
	if err := writeFileAtomic(f.Path, append(data, '\n')); err != nil {
		return worklog.Settings{}, fmt.Errorf("writing settings file %s: %w", f.Path, err)
	}
	return st, nil
}

func (f *SettingsFile) logger() logrus.FieldLogger {
	if f.Log == nil {
		return logrus.StandardLogger()
	}
	return f.Log
}

// cleanVerticles trims names and drops blanks and duplicates, keeping order.
func cleanVerticles(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// stripLineComments drops whole-line // comments so admins can annotate the
// file when editing it by hand.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}
