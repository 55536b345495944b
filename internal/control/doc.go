// Package control provides drivers that decide, frame by frame, which cart
// keys are held.
//
// Drivers implement [sim.Driver]:
//
//   - [Keyboard]: passes through key state a host sets from real input
//   - [Script]: holds keys during fixed time windows
//   - [PID]: steers the cart to a target position
//   - [Feedback]: linear state feedback that damps the swing
//   - [None]: never presses anything
//
// # Usage
//
//	pid := control.NewPID(4.0, 0.0, 1.5, 0.3) // Kp, Ki, Kd, target x
//	rec := sim.NewRecorder(s, pid)
//
// Controller outputs are turned into key presses with a deadband, so every
// driver is limited to what a player could do.
package control
