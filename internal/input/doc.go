// Package input defines trigger identities and edge events shared by all
// input sources.
//
// A Trigger names a bindable keyboard key or gamepad button. The two device
// namespaces are disjoint: a keyboard "A" and a gamepad "A" are different
// triggers even though they share a display name.
//
// Sources (the low-level keyboard hook and the gamepad poller) are modeled as
// the Source interface. Each source feeds Event values into a channel shared
// with the dispatcher, which is the sole consumer.
package input
