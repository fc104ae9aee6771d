package games

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// GameConfig describes one game the lobby serves. Score submission is not
// strictly validated against the registry; it drives page metadata and the
// /api/games listing.
type GameConfig struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type GamesFile struct {
	Games []GameConfig `json:"games"`
}

type Registry struct {
	mu    sync.RWMutex
	games map[string]*GameConfig
}

func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*GameConfig),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read games config: %w", err)
	}

	var file GamesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse games config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Games {
		registry.Register(&file.Games[i])
	}
	return registry, nil
}

func (r *Registry) Register(cfg *GameConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[cfg.ID] = cfg
}

func (r *Registry) Get(gameID string) *GameConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.games[gameID]
}

func (r *Registry) Exists(gameID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.games[gameID]
	return ok
}

// All returns the registered games sorted by id for stable listings.
func (r *Registry) All() []*GameConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*GameConfig, 0, len(r.games))
	for _, cfg := range r.games {
		result = append(result, cfg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
