// Package models defines the core domain models for Splitledger.
//
// # Records
//
//   - User: a person known to the identity provider
//   - Group: a named set of members sharing expenses
//   - Expense: who paid, how much, and how it is split
//   - Settlement: a direct payment from one user to another
//
// Expenses and settlements are append-only. Both reference users by ID only
// (weak references): a referenced user may have been removed since the record
// was written, so readers must tolerate missing users.
//
// # Snapshots
//
// Records that reference users also carry a UserSnapshot taken at write time
// so that listings render without joining the user table. Snapshots are never
// refreshed and may be stale.
//
// # Scope
//
// An expense or settlement with an empty GroupID is one-to-one; otherwise it
// belongs to the group scope.
package models
