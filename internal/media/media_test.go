package media

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyMediaType(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":      TypeImage,
		"photo.JPEG":     TypeImage,
		"A.JPG":          TypeImage,
		"clip.mp4":       TypeVideo,
		"clip.WebM":      TypeVideo,
		"song.mp3":       TypeAudio,
		"song.FLAC":      TypeAudio,
		"notes.txt":      TypeText,
		"archive.tar.gz": TypeText, // only the final extension counts
		"noextension":    TypeText,
		"":               TypeText,
		".hidden":        TypeText,
		"trailingdot.":   TypeText,
	}
	for name, want := range cases {
		require.Equal(t, want, ClassifyMediaType(name), "filename %q", name)
	}
}

func TestEncodeContentRoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte("hello world"),
		{0x00, 0xff, 0x10, 0x80, 0x7f},
		{},
	}
	for _, in := range inputs {
		enc := EncodeContent(in)
		out, err := DecodeContent(enc)
		require.NoError(t, err)
		require.Equal(t, in, out)
	}
}

func TestDecodeContentRejectsGarbage(t *testing.T) {
	_, err := DecodeContent("not base64!!!")
	require.Error(t, err)
}
