// Package draftstore persists the mapping from local human-friendly labels
// to provider draft ids as a small JSON file alongside the tool's config.
//
// The store is advisory: the provider owns the drafts, and a label can go
// stale when a draft is sent or deleted outside the tool. Stale labels are
// reported by the list-drafts command rather than silently pruned.
package draftstore
