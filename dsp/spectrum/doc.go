// Package spectrum measures unit output in the frequency domain.
//
// [Goertzel] evaluates single bins cheaply and is used to check filter
// responses; [Analyze] runs a windowed FFT over a whole rendering to locate
// resampling images and quantisation sidebands. Magnitude helpers delegate to
// algo-vecmath kernels.
package spectrum
