package media

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const (
	wavSampleRate      = 44100
	wavNumChannels     = 1
	wavBitsPerSample   = 16
	wavHeaderSize      = 44
	wavSubchunkSize    = 16
	wavAudioFormat     = 1
	wavChunkSizeOffset = 36

	// DefaultBitrate is assumed for compressed audio whose length cannot be
	// read from a header.
	DefaultBitrate = 128000.0

	DefaultWordsPerMinute = 150.0
)

var ErrNoAudio = errors.New("no audio data")

// SilentWAV returns a mono 16-bit PCM WAV of silence lasting d.
func SilentWAV(d time.Duration) []byte {
	bytesPerSample := wavBitsPerSample / 8
	numSamples := int(d.Seconds() * float64(wavSampleRate))
	dataSize := numSamples * wavNumChannels * bytesPerSample
	byteRate := wavSampleRate * wavNumChannels * bytesPerSample
	blockAlign := wavNumChannels * bytesPerSample

	buf := make([]byte, wavHeaderSize+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(wavChunkSizeOffset+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], wavSubchunkSize)
	binary.LittleEndian.PutUint16(buf[20:22], wavAudioFormat)
	binary.LittleEndian.PutUint16(buf[22:24], wavNumChannels)
	binary.LittleEndian.PutUint32(buf[24:28], wavSampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], wavBitsPerSample)

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	return buf
}

// EstimateSpeechDuration is how long words take to read aloud at wpm.
func EstimateSpeechDuration(words int, wpm float64) time.Duration {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	return time.Duration(float64(words) / wpm * float64(time.Minute))
}

// MeasureDuration reads the playing time of audio data. WAV files are measured
// from their header; anything else is estimated from its size at bitrate
// bits per second.
func MeasureDuration(data []byte, bitrate float64) (time.Duration, error) {
	if len(data) == 0 {
		return 0, ErrNoAudio
	}

	if isWAV(data) {
		return wavDuration(data)
	}

	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}
	return time.Duration(float64(len(data)*8) / bitrate * float64(time.Second)), nil
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

// wavDuration walks the RIFF chunks for the fmt byte rate and the data size.
func wavDuration(data []byte) (time.Duration, error) {
	var byteRate, dataSize uint32
	haveFmt, haveData := false, false

	for off := 12; off+8 <= len(data); {
		id := string(data[off : off+4])
		size := binary.LittleEndian.Uint32(data[off+4 : off+8])
		body := off + 8

		switch id {
		case "fmt ":
			if body+12 > len(data) {
				return 0, fmt.Errorf("truncated fmt chunk")
			}
			byteRate = binary.LittleEndian.Uint32(data[body+8 : body+12])
			haveFmt = true
		case "data":
			dataSize = size
			if avail := uint32(len(data) - body); dataSize > avail {
				dataSize = avail
			}
			haveData = true
		}

		if haveFmt && haveData {
			break
		}
		// Chunks are word aligned.
		off = body + int(size) + int(size&1)
	}

	if !haveFmt || !haveData {
		return 0, fmt.Errorf("wav header missing fmt or data chunk")
	}
	if byteRate == 0 {
		return 0, fmt.Errorf("wav header has zero byte rate")
	}

	return time.Duration(float64(dataSize) / float64(byteRate) * float64(time.Second)), nil
}
