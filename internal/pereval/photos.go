package pereval

import (
	"encoding/base64"
	"strings"
)

// DecodeImageData turns the wire form of a photo into raw bytes. Both
// plain base64 and data-URI strings ("data:image/png;base64,...") are
// accepted; missing padding is repaired. Anything undecodable degrades
// to an empty payload so one bad photo never sinks a whole submission.
func DecodeImageData(data string) []byte {
	if data == "" {
		return []byte{}
	}
	if strings.HasPrefix(data, "data:") {
		idx := strings.Index(data, ";base64,")
		if idx < 0 {
			return []byte{}
		}
		data = data[idx+len(";base64,"):]
	}
	if pad := len(data) % 4; pad != 0 {
		data += strings.Repeat("=", 4-pad)
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return []byte{}
	}
	return decoded
}
