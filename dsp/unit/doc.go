// Package unit defines the host contract shared by every effect unit.
//
// A Unit owns a fixed parameter table, a fixed program table and its
// per-channel state. Hosts describe parameters through Parameters, change
// them through SetParameterValue or LoadProgram, and stream audio through
// Run. Run never allocates, blocks or fails.
//
// Units are not safe for concurrent use. Host wraps a Unit so that another
// goroutine can queue edits that are applied at the start of the next block.
package unit
