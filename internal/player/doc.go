// Package player owns preview playback: one audio handle at a time and the progress of the row that started it.
//
// [Controller] is host-agnostic. The TUI calls it from its update loop and schedules a frame tick for the
// animation handle returned by [Controller.Play]; ticks carrying any other handle are ignored, which is how a
// replaced playback's animation is cancelled.
//
// States move Idle -> Loading -> Playing -> Ended | Stopped.
//
// Audio comes from an [Audio] implementation. [ProcessAudio] runs an external player (ffplay by default) per
// preview; [Probe] downloads the preview and measures its real duration for MP3 previews.
package player
