// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"sync"

	"github.com/rocketpuzzles/server/models"
	"github.com/rocketpuzzles/server/store"
)

var (
	ErrNotFound  = errors.New("puzzle not found")
	ErrUnknownID = errors.New("unknown obfuscated id")
)

// Result distinguishes a mutation that wrote from one whose diff was
// empty. A store failure is reported through the error return instead.
type Result int

const (
	ResultNoChange Result = iota
	ResultUpdated
)

func (r Result) String() string {
	if r == ResultUpdated {
		return "updated"
	}
	return "no_change"
}

// Cache is the single in-process mirror of puzzle content, solutions,
// the obfuscation table, the admin access set, channel routing, and the
// release gate. Reads never touch the store; every mutation diffs
// against the cached snapshot, writes only the delta in one store
// transaction, and publishes the new snapshot only after the store
// commits. One RWMutex guards everything: mutations are admin-only and
// rare, so coarse locking costs nothing.
type Cache struct {
	mu    sync.RWMutex
	store store.Store

	puzzles   map[int]models.Puzzle
	solutions map[int]models.Solution
	byID      map[int]models.Obfuscation
	byKey     map[string]int
	access    map[string]struct{}
	channels  map[string]string
	release   int
}

func New(st store.Store) *Cache {
	return &Cache{store: st}
}

// Load performs the full cold load. It is called once at startup and is
// the only call in the subsystem whose failure should stop the process.
func (c *Cache) Load(ctx context.Context) error {
	snap, err := c.store.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("cache load: %w", err)
	}

	byID := make(map[int]models.Obfuscation, len(snap.Obfuscations))
	byKey := make(map[string]int, len(snap.Obfuscations))
	for _, o := range snap.Obfuscations {
		byID[o.ID] = o
		byKey[o.URLKey] = o.ID
	}

	access := make(map[string]struct{}, len(snap.Access))
	for _, id := range snap.Access {
		access[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.puzzles = snap.Puzzles
	c.solutions = snap.Solutions
	c.byID = byID
	c.byKey = byKey
	c.access = access
	c.channels = snap.Channels
	c.release = snap.Release

	slog.Info("cache loaded",
		"puzzles", len(c.puzzles),
		"access_entries", len(c.access),
		"release", c.release,
	)
	return nil
}

// Puzzle returns the cached entry for an internal id.
func (c *Cache) Puzzle(id int) (models.Puzzle, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.puzzles[id]
	if !ok {
		return models.Puzzle{}, ErrNotFound
	}
	return p, nil
}

// Solution returns the expected answers for an internal id.
func (c *Cache) Solution(id int) (models.Solution, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.solutions[id]
	if !ok {
		return models.Solution{}, ErrNotFound
	}
	return s, nil
}

// Obfuscate translates an internal id to its external URL key.
func (c *Cache) Obfuscate(id int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.byID[id]
	if !ok {
		return "", ErrUnknownID
	}
	return o.URLKey, nil
}

// Deobfuscate translates an external URL key back to the internal id.
func (c *Cache) Deobfuscate(key string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byKey[key]
	if !ok {
		return 0, ErrUnknownID
	}
	return id, nil
}

// ContentKey returns the content key for an internal id.
func (c *Cache) ContentKey(id int) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.byID[id]
	if !ok {
		return "", ErrUnknownID
	}
	return o.ContentKey, nil
}

// Release returns the cached release gate value.
func (c *Cache) Release() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.release
}

// IsAdmin reports whether the user id is in the access set.
func (c *Cache) IsAdmin(userID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.access[userID]
	return ok
}

// Access returns the access set, sorted.
func (c *Cache) Access() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.access))
	for id := range c.access {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Channel returns the routed channel id for a name ('guild', '1'..'10').
func (c *Cache) Channel(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channels[name]
}

// Channels returns a copy of the channel-routing map.
func (c *Cache) Channels() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.channels)
}

// UpdatePuzzleContent diffs the incoming parts and flavor against the
// cached entry field by field and writes only the changed fields in one
// store transaction. An empty diff returns ResultNoChange without a
// store write; the store's affected-row counts are never consulted for
// that decision. On store failure the cached entry is left exactly as
// it was.
func (c *Cache) UpdatePuzzleContent(ctx context.Context, id int, parts [models.PartCount]models.Part, flavor string) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.puzzles[id]
	if !ok {
		return ResultNoChange, ErrNotFound
	}

	next := cur
	var changes []store.FieldChange
	for i := 0; i < models.PartCount; i++ {
		incoming := parts[i]
		for _, f := range partFields {
			v := normalizeNewlines(f.get(&incoming))
			if v == f.get(&cur.Parts[i]) {
				continue
			}
			f.set(&next.Parts[i], v)
			changes = append(changes, store.FieldChange{Part: i + 1, Column: f.column, Value: v})
		}
	}

	var flavorChange *string
	if v := normalizeNewlines(flavor); v != cur.Flavor {
		next.Flavor = v
		flavorChange = &v
	}

	if len(changes) == 0 && flavorChange == nil {
		return ResultNoChange, nil
	}

	if err := c.store.UpdatePuzzle(ctx, id, changes, flavorChange); err != nil {
		return ResultNoChange, fmt.Errorf("update puzzle %d: %w", id, err)
	}

	c.puzzles[id] = next
	slog.Info("puzzle content updated", "puzzle", id, "changed_fields", len(changes), "flavor_changed", flavorChange != nil)
	return ResultUpdated, nil
}

// UpdateAccessAndRouting replaces the access set and channel-routing
// map. The privileged identity is re-added before the diff, so no
// rewrite can ever lock it out. Only the set delta is written; memory
// is refreshed after the store commits.
func (c *Cache) UpdateAccessAndRouting(ctx context.Context, channels map[string]string, permitted []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	incoming := make(map[string]struct{}, len(permitted)+1)
	incoming[models.PrivilegedAdminID] = struct{}{}
	for _, id := range permitted {
		if id != "" {
			incoming[id] = struct{}{}
		}
	}

	var added, removed []string
	for id := range incoming {
		if _, ok := c.access[id]; !ok {
			added = append(added, id)
		}
	}
	for id := range c.access {
		if _, ok := incoming[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)

	channelsChanged := !maps.Equal(channels, c.channels)
	if len(added) == 0 && len(removed) == 0 && !channelsChanged {
		return nil
	}

	if err := c.store.ReplaceAccess(ctx, added, removed, channels); err != nil {
		return fmt.Errorf("update access: %w", err)
	}

	c.access = incoming
	c.channels = maps.Clone(channels)
	slog.Info("access and routing updated", "added", len(added), "removed", len(removed), "channels_changed", channelsChanged)
	return nil
}

// UpdateReleaseGate writes a new release value. Callers clamp the value
// to the valid range before this call.
func (c *Cache) UpdateReleaseGate(ctx context.Context, value int) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value == c.release {
		return ResultNoChange, nil
	}
	if err := c.store.UpdateRelease(ctx, value); err != nil {
		return ResultNoChange, fmt.Errorf("update release gate: %w", err)
	}
	c.release = value
	slog.Info("release gate updated", "release", value)
	return ResultUpdated, nil
}

// Champions scans stored progress for users whose full vector is true.
// Read-only; nothing is cached.
func (c *Cache) Champions(ctx context.Context) ([]models.Champion, error) {
	return c.store.Champions(ctx)
}
