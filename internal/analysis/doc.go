// Package analysis provides post-run analysis of thermalized configurations
// and their energy traces.
//
//   - [RadialDistribution]: pair correlation g(r) of a configuration up to half the box
//   - [Summarize]: mean and spread of the equilibrated tail of a trace
//   - [Autocorrelation]: normalized autocorrelation of a series via FFT
//   - [IntegratedTime]: integrated autocorrelation time of a series
//
// # Equilibration
//
// A run is usually inspected by summarizing the second half of its trace and
// checking that the integrated autocorrelation time is small compared to
// the number of samples:
//
//	s := analysis.Summarize(analysis.Energies(trace), 0.5)
//	tau := analysis.IntegratedTime(analysis.Energies(trace)[s.Start:])
package analysis
