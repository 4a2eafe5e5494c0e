// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/micshim/formats/wav"
)

func Example() {
	out := new(bytes.Buffer)
	_ = wav.WriteWAV16(out, 16000, 1, []int16{0, 1000, -1000, 0})

	src, err := wav.Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		fmt.Println("decode:", err)
		return
	}

	buf := make([]float32, 8)
	n, _ := src.ReadSamples(buf)
	fmt.Printf("%d Hz, %d channel(s), %d samples\n", src.SampleRate(), src.Channels(), n)
	// Output: 16000 Hz, 1 channel(s), 4 samples
}
