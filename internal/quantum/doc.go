// Package quantum animates the "quantum" training field: packets travelling
// along a decorative spiral while a core rotates and its energy oscillates.
//
// The simulator is a plain state machine:
//
//   - [GenerateSpiral]: pure, deterministic anchor layout
//   - [Core]: owns the anchors and the live packets
//   - [Core.Advance]: one tick, returns a [Snapshot]
//
// # Example
//
//	core, _ := quantum.New(quantum.WithSeed(7))
//	snap, _ := core.Advance(0.1)
//	for _, p := range snap.Packets {
//		draw(p.X, p.Y, p.Channel, p.Kind)
//	}
//
// # Thread Safety
//
// Core is NOT thread-safe. Advance must only be called from the goroutine that
// drives the animation. Snapshots are independent copies and may be handed to
// a renderer on another goroutine.
package quantum
