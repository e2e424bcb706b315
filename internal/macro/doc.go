// Package macro is the trigger dispatch and macro execution engine.
//
// The engine holds an immutable registry mapping triggers to actions,
// consumes edge events from the input sources, and interprets the bound
// action into a precisely ordered sequence of key, text, and wait operations
// against the OS injection capability.
//
// Components:
//
//   - DelaySpec / Resolver: fixed and bounded-random delay resolution
//   - KeyState: tracks held virtual keys and drains them on abnormal exit
//   - Interpreter: executes one action definition to completion
//   - Registry: first-write-wins trigger-to-action mapping
//   - Dispatcher: event consumer with the global toggle and per-trigger
//     serialized execution lanes
//
// Execution runs apart from event capture: a long macro never stalls the
// hook or poller. Two firings of the same trigger are queued one behind the
// other; different triggers execute concurrently.
package macro
