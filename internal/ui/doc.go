// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI has two views:
//  1. [SearchView] : Type a query, pick tracks or drill into an artist, and preview the selection
//  2. [ResultView] : Show the classified group, its explanation and the per-group scores
//
// Search and drilldown responses carry a sequence number and only the newest one is rendered.
// Picking the fifth track seals the selection and submits it once; a spinner covers the screen until
// the classifier answers.
//
// Preview playback is delegated to a [player.Controller]. Frame ticks carry the animation id they
// were scheduled for, so ticks from a cancelled animation fall through without redrawing.
package ui
