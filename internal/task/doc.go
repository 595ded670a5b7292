// Package task holds the task model and the in-memory task store.
//
// A task has a description, a priority from 1 (highest) to 5 (lowest), a due
// date with no time component, and a completed flag:
//
//	Task{Description: "Call bank", Priority: 1, DueDate: 2025-03-01, Completed: false}
//
// # Validation
//
// New and Store.Add validate raw user input in this order:
//
//  1. description must be non-empty after trimming and free of '|' and line breaks
//  2. priority must parse as an integer in [1,5]
//  3. due date must parse as YYYY-MM-DD and name a real calendar day
//
// A failed validation returns one of the sentinel errors (ErrEmptyDescription,
// ErrInvalidPriority, ErrInvalidDate, ErrDelimiterInDescription) and leaves the
// store unchanged.
//
// # Views
//
// A view is the collection sorted by (completed, priority, due date) ascending,
// with insertion order breaking ties, optionally restricted to one priority.
// Views are recomputed on every call and never mutate the store.
//
// # Identity
//
// Every task carries a uuid assigned when it enters the store. IDs are not
// written to the task file; they are derived from description, priority, due
// date and the number of earlier identical tasks (DeriveID), so loading a file
// gives every task the ID it had when it was added. Mutations take that ID. Callers that present numbered rows resolve a row position to an ID
// with Store.At against the same filter they rendered.
package task
