package capture

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformedDataURL indicates an input that is not a base64 data URL.
var ErrMalformedDataURL = errors.New("capture: malformed data URL")

// ParseDataURL decodes a "data:{mime};base64,{payload}" string into its
// media type and raw bytes.
func ParseDataURL(s string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrMalformedDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformedDataURL
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 || mediaType == "" {
		return "", nil, ErrMalformedDataURL
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrMalformedDataURL
	}
	return mediaType, data, nil
}

// EncodeDataURL renders bytes as a base64 data URL for previews.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
