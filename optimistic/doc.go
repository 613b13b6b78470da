// Package optimistic implements a sorted linked set with optimistic
// fine-grained locking.
//
// The list is strictly increasing between a head sentinel (Bounds.Min) and
// a tail sentinel (Bounds.Max). Every node has its own lock (a spin lock by
// default). An operation:
//
//  1. locates the (pred, curr) edge for its value without taking any lock;
//  2. locks pred, then curr;
//  3. validates that neither is tombstoned and pred.next is still curr,
//     otherwise unlocks and starts over;
//  4. links a new node between them (Insert) or marks curr and bypasses it
//     (Remove).
//
// Contains never locks. Nodes come from an arena and are never freed one by
// one: a removed node stays readable for goroutines that still reference it
// until the set is released. Contention is proportional to how many
// operations target the same neighbourhood of the key order, not to the set
// as a whole.
//
// The retry loop is budgeted (Options.MaxRetries); exhausting the budget
// panics, since it indicates livelock or a broken invariant.
package optimistic
