// Package physics builds the periodic particle system and evaluates its
// pair energy.
//
//   - [System]: particles on a cubic lattice inside a periodic box
//   - [PseudoHardSphere]: the steep repulsive pair potential
//   - [Evaluator]: pair, particle and total energies truncated at half the box
//   - [Distance] and [MinimumImageDistance]: pair distance modes
//
// Positions are kept in [0, BoxLength) on every axis by [System.Wrap].
package physics
