package media

import (
	"encoding/base64"
	"strings"
)

// Media types recognised for content items. Anything that is not a known
// image/video/audio extension is treated as text.
const (
	TypeText  = "text"
	TypeImage = "image"
	TypeAudio = "audio"
	TypeVideo = "video"
)

var (
	imageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "webp": true, "svg": true}
	videoExts = map[string]bool{"mp4": true, "avi": true, "mov": true, "wmv": true, "flv": true, "webm": true}
	audioExts = map[string]bool{"mp3": true, "wav": true, "flac": true, "aac": true, "ogg": true, "m4a": true}
)

// ClassifyMediaType determines the media type of a file from its extension
// (the part after the last dot, case-insensitive). A filename without a dot
// has an empty extension and classifies as text. Never fails.
func ClassifyMediaType(filename string) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i+1:])
	}
	switch {
	case imageExts[ext]:
		return TypeImage
	case videoExts[ext]:
		return TypeVideo
	case audioExts[ext]:
		return TypeAudio
	default:
		return TypeText
	}
}

// EncodeContent converts raw file bytes into the text-safe form stored inside
// profile documents (standard base64). Round-trips exactly via DecodeContent.
func EncodeContent(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeContent reverses EncodeContent.
func DecodeContent(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
