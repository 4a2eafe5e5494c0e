// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives the capture shim is built from.
//
//   - Source: a pull-based stream of interleaved float32 samples in [-1, 1]
//   - Decoder and Registry: format decoders, looked up by key or detected
//     from the first bytes of a payload (Sniffer)
//   - Resampler: cubic-interpolation sample rate conversion; a pass-through
//     when the rates already match, so decoded PCM stays bit-exact
//   - ChannelMixer: down-mix by averaging, up-mix mono by copying
//   - Buffer: a fully decoded payload held in memory, as produced by
//     ReadBuffer
//
// Sources signal the end of the stream with io.EOF, possibly together with
// the final samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
