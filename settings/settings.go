// Package settings persists the client's user preferences between launches.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

const itemKey = "settings"

// Saved represents the settings data stored on disk
type Saved struct {
	PlayerName      string `json:"playerName"`
	LastAddress     string `json:"lastAddress"`
	Trails          bool   `json:"trails"`
	Fullscreen      bool   `json:"fullscreen"`
	ResolutionIndex int    `json:"resolutionIndex"`
}

// ItemStore is the key/value storage behind a Store. *gdata.Manager satisfies it.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store loads and saves Saved through an ItemStore. A nil *Store loads zero
// settings and drops saves.
type Store struct {
	items    ItemStore
	defaults Saved
	log      *zap.SugaredLogger
}

// Open creates a gdata-backed store for appName.
func Open(appName string, defaults Saved, log *zap.SugaredLogger) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, err
	}
	return NewStore(m, defaults, log), nil
}

func NewStore(items ItemStore, defaults Saved, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Store{items: items, defaults: defaults, log: log}
}

// Load returns the saved settings, or the defaults when nothing was saved or
// the stored item cannot be read.
func (s *Store) Load() Saved {
	if s == nil {
		return Saved{}
	}
	data, err := s.items.LoadItem(itemKey)
	if err != nil {
		s.log.Warnw("could not load settings", "err", err)
		return s.defaults
	}
	if len(data) == 0 {
		return s.defaults
	}
	saved := s.defaults
	if err := json.Unmarshal(data, &saved); err != nil {
		s.log.Warnw("could not parse saved settings", "err", err)
		return s.defaults
	}
	return saved
}

// Save writes v to the item store.
func (s *Store) Save(v Saved) error {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.items.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Update loads the settings, applies fn and saves the result. A failed save
// is logged and returned.
func (s *Store) Update(fn func(*Saved)) error {
	saved := s.Load()
	fn(&saved)
	if err := s.Save(saved); err != nil {
		if s != nil {
			s.log.Warnw("could not save settings", "err", err)
		}
		return err
	}
	return nil
}
