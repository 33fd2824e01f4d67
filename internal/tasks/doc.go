// Package tasks holds the selection-and-submission logic behind the TUI and CLI.
//
// # Core Operations
//
//  1. [SelectionSet.Add] : append a chosen track
//     - rejects a sixth track with [shared.ErrSelectionFull]
//     - reports "sealed" exactly once, on the append that reaches [MaxSelections]
//
//  2. [PreviewResolver.Resolve] : find a preview URL through the iTunes lookup
//     - failures are logged and resolve to ""
//     - [ChoosePreviewURL] prefers the looked-up URL over the catalog one
//     - [PreviewResolver.ResolveAll] resolves many tracks with a small worker pool
//
//  3. [Submitter.Submit] : classify the five selected tracks
//     - stores the analysis payload under [models.AnalysisKey] for the session
//     - builds the relative result address /result?group=...&explanation=...
//
// # Progress Reporting
//
// Long operations report through an optional progress channel.
// The [ProgressUpdate] struct contains phase, step counters and a message; sends never block.
package tasks
