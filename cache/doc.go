// Copyright (c) 2025 Rocket Puzzles.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache holds the single in-process mirror of puzzle content and
site configuration: puzzles, solutions, the id obfuscation table, the
admin access set, channel routing, and the release gate.

# Cold Load

New wires the cache to a store; Load pulls everything in one snapshot:

	c := cache.New(st)
	if err := c.Load(ctx); err != nil {
		// the only fatal failure in the subsystem
	}

Load failure should stop the process. After a successful load, reads
never touch the store.

# Reads

All readers take the read lock and return copies:

	puzzle, err := c.Puzzle(3)
	id, err := c.Deobfuscate(urlKey)
	if c.IsAdmin(userID) { ... }
	gate := c.Release()

Deobfuscate and Obfuscate are two directions of a bijective, immutable
seed table; an unknown key means the URL is wrong, never that data is
missing.

# Mutations

Every mutation follows the same discipline: diff the incoming state
against the cached snapshot, write only the delta in one store
transaction, and publish memory only after the store commits.

	result, err := c.UpdatePuzzleContent(ctx, id, parts, flavor)
	err = c.UpdateAccessAndRouting(ctx, channels, permitted)
	result, err = c.UpdateReleaseGate(ctx, value)

An empty diff returns ResultNoChange without any store write. The
store's affected-row counts are never consulted; the diff alone decides.
On store failure the cached state is untouched, so memory and store
never diverge.

UpdateAccessAndRouting re-adds the permanently privileged identity
before diffing: no rewrite of the access set can lock it out.

# Concurrency

One RWMutex guards all state. Mutations are admin-only and rare, so
coarse serialization is free; reads run concurrently under RLock.
*/
package cache
