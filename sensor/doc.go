// Package sensor turns raw stylus and motion input into brush parameter
// modulation.
//
// A [Reading] is an immutable snapshot of everything the host knows about
// the pointer at one instant: pressure, tilt, barrel rotation, speed,
// accumulated stroke distance and elapsed stroke time. A [Config] binds one
// sensor [Kind] to a response [Curve] and a strength, and produces a
// multiplicative modulation factor around 1.0:
//
//	modulation = 1 + (curve(compute(kind, reading)) - 1) * strength
//
// Because the factor is an affine blend around 1.0, any number of sensors
// compose multiplicatively without re-normalization:
//
//	effectiveSize = baseSize * cfg1.Value(r) * cfg2.Value(r) * ...
//
// A disabled Config always yields exactly 1.0.
//
// Sensors are a closed set: adding one means adding a Kind case to
// [Compute], not implementing an interface.
package sensor
