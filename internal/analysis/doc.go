// Package analysis looks at recorded tick series in the frequency domain.
//
// The energy level of the particle field drifts with sin(t), so its spectrum
// should peak near 1/(2π) Hz when the simulator runs on the virtual clock.
// A wall-clock run shows no such peak.
package analysis
