// Package resample provides the sample-and-hold rate reducer used by the
// lo-fi units.
//
// A Hold shares its rate between any number of Channel cursors. Each call to
// Process either passes the new input through and latches it, or repeats the
// latched value until the cursor reaches the next sampling instant. At the
// host rate every sample passes through unchanged.
package resample
