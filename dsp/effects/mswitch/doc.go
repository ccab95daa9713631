// Package mswitch implements Mswitch, a MIDI-controlled audio switch.
//
// The mono input is routed either to the wet output (channel 0) or to the
// dry output (channel 1). Every three-byte MIDI message whose first two
// bytes equal the Byte 1 and Byte 2 parameters toggles the route from its
// frame onwards. The default program matches control change 87 on channel 3.
package mswitch
