// Package physics advances the cart and the bob by one frame.
//
// The bob is integrated with semi-implicit Euler, pulled back onto a circle of
// radius RestLength around the cart by a single positional correction and has
// its velocity re-derived from the corrected position. The cart is driven
// only by the acceleration its host writes into it; the bob feels that
// acceleration as a pseudo-force.
//
// # Coordinates
//
// Positions are window-normalized: x and y both run over [0,1] whatever the
// window's shape. Distances and angles are measured after [AspectScale],
// so the rod keeps its on-screen length when the window is resized:
//
//	scale := physics.AspectScale(s.Aspect)
//	length := physics.Distance(s.Bob.Position, s.Cart.Position, scale)
//
// # Errors
//
// [Step] returns a [dynamo.StepError] wrapping [vec.ErrDivisionByZero] when
// dt or the bob mass is too small to divide by.
package physics
