// Package models defines domain entities and persistence interfaces for tunetype.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): immutable values decoded from the catalog and classifier
//   - [Track] : a catalog track with optional album art and preview URL
//   - [Artist] : a catalog artist with follower count
//   - [SearchResults] : one query's tracks and artists, never merged across queries
//   - [SelectionEntry] : a chosen track with its insertion order and resolved preview
//   - [ClassificationResult] : group, explanation and the opaque [AnalysisPayload]
//
// 2. Persistent Entities: database-backed models with lifecycle timestamps
//   - [Session] : one interactive run, owner of the payload handoff
//   - [StoredPayload] : a value written once and read once under a session key
//
// Persistent entities implement the Model interface; the Repository[T] interface defines standard CRUD operations.
package models
