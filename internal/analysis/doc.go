// Package analysis inspects recorded cart and bob runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: swing frequency of the angle
//     series via FFT
//   - [WrapCount]: how often the angle crossed the branch cut
//   - [PhasePortrait]: angle against angular velocity
//   - [LyapunovExponent]: divergence of two runs started a hair apart
//
// The angle is never unwrapped by the physics step, so a bob swinging over
// the top shows up as jumps of almost 2π. Spectra of such runs are dominated
// by those jumps; check [WrapCount] first.
package analysis
