// Package time computes level statistics of audio blocks: DC offset, RMS,
// peak, crest factor and zero crossings. Results can be taken over a whole
// buffer with Calculate or accumulated block by block with Streaming.
package time
