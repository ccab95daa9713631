// Package mud implements Mud, a saturating band-pass tone shaper whose
// filter can be swept by a slow LFO.
//
// The LFO knob has a dead zone around zero. Negative settings sweep deeper
// and three times faster than positive ones. The swept filter position is
// recomputed once per block and eased towards its new value, so the sweep
// rate depends on the host block size.
package mud
