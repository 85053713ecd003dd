// Package dynamo provides the core types shared by the Monte Carlo engine.
//
//   - [Vec3]: a particle position
//   - [Configuration]: the positions of every particle
//   - [RunContext]: mutable run state (energy, acceptance counts, max displacement)
//   - [Record]: one reported step of a run
//   - [Observer]: receives a [Record] after every step
//   - [Uniform]: the random stream a run consumes
//   - [Potential]: a radial pair potential
//
// # Determinism
//
// A run is fully determined by its parameters and the sequence returned by
// its [Uniform]. Each trial step draws one particle index, three coordinate
// offsets and one acceptance variate, in that order.
package dynamo
