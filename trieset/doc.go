// Package trieset defines a concurrent, prefix-searchable set of strings
// backed by a trie.
//
// A Trie supports Add, Has, Del, prefix enumeration and full sorted
// enumeration under any number of simultaneous callers, plus a background
// ("async") bulk-mutation channel that does not block the caller.
//
// Alphabet:
// --------
//
// Every byte of a word must lie in [MinChar..MaxChar] (7-bit ASCII). A byte
// outside that range yields an error wrapping ErrInvalidCharacter at the
// point the traversal reaches it.
//
// Nodes:
// -----
//
// Each node owns a fixed array of Fanout child slots, a 128-bit occupancy
// bitmap over those slots, an end-of-word flag, and a back pointer to its
// parent together with the slot it occupies there. The parent pointer is
// only followed upwards while pruning. Every node carries its own mutex
// guarding the slots, the bitmap and the flags as one unit.
//
// A node other than the root exists only while it ends a word or has
// children: removing a word eagerly unlinks the dead-end chain above it.
//
// Locking:
// -------
//
//   - Gate. Every operation first enters one of two gates (see package gate).
//     Has, HasBatch, Iter, Keys and KeysWithPrefix enter as readers; Add and
//     Del (single or batch) enter as writers. Readers and writers never
//     overlap, writers overlap each other freely.
//
//   - Lock coupling. Walking down holds at most one node lock at a time: lock
//     the node, read or create the slot, unlock, move to the child.
//
//   - Pruning walks up holding the child lock while taking the parent lock
//     (child-then-parent), unlinks the child, then continues from the parent
//     with its lock already held. An unlinked node is marked dead; a writer
//     that locks a dead node on its way down restarts from the root.
//
// Async channel:
// -------------
//
// AddAsync and DelAsync take a write permit on a second, independent gate
// before returning, then hand the batch to a goroutine which runs it (under
// an ordinary write permit of the first gate) and finally releases the async
// permit. The goroutine references the Trie, which keeps it alive for as
// long as the batch runs.
//
// The two gates are not ordered against each other: a Has issued right after
// AddAsync returns may or may not see the new words. Flush waits until every
// async batch launched before it has completed.
//
// Example:
// -------
//
//	set := trieset.New()
//
//	set.Add("be")
//	added, _ := set.AddBatch([]string{"be", "bet", "beta"}) // [false true true]
//	set.Del("bet")
//
//	keys, _ := set.KeysWithPrefix("be") // ["be", "beta"]
package trieset
