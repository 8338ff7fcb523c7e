package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"reshort/internal/model"
	"sort"
)

const DefaultPresetName = "Weekly Sunday @ 9am"

func defaultPresets() map[string]model.Preset {
	return map[string]model.Preset{
		DefaultPresetName: {
			StartDay:     "Sunday",
			Hour:         9,
			Minute:       0,
			IntervalDays: 7,
		},
	}
}

// PresetStore keeps named schedule rules in a single JSON file. Every write
// rewrites the whole file; a missing or corrupt file falls back to the
// built-in default.
type PresetStore struct {
	path string
}

func NewPresetStore(path string) *PresetStore {
	return &PresetStore{path: path}
}

func (s *PresetStore) Load() map[string]model.Preset {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return defaultPresets()
	}

	var presets map[string]model.Preset
	if err := json.Unmarshal(b, &presets); err != nil || len(presets) == 0 {
		return defaultPresets()
	}

	return presets
}

func (s *PresetStore) save(presets map[string]model.Preset) error {
	b, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, b, 0644); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	return nil
}

func (s *PresetStore) Get(name string) (model.Preset, bool) {
	p, ok := s.Load()[name]
	return p, ok
}

func (s *PresetStore) AddOrUpdate(name string, p model.Preset) error {
	if name == "" {
		return fmt.Errorf("preset name must not be empty")
	}
	if err := Validate(p); err != nil {
		return err
	}

	presets := s.Load()
	presets[name] = p
	return s.save(presets)
}

func (s *PresetStore) Delete(name string) error {
	presets := s.Load()
	if _, ok := presets[name]; !ok {
		return fmt.Errorf("preset %s not found", name)
	}

	delete(presets, name)
	return s.save(presets)
}

func (s *PresetStore) Names() []string {
	presets := s.Load()

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
