package index

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jpegWithTimestamp builds a minimal JPEG carrying ts as its capture
// timestamp. Pass "" for a metadata-free JPEG.
func jpegWithTimestamp(ts string) []byte {
	if ts == "" {
		return []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	}

	payload := append([]byte(ts), 0x00)

	dir := &bytes.Buffer{}
	binary.Write(dir, binary.LittleEndian, uint16(1))
	binary.Write(dir, binary.LittleEndian, uint16(0x0132)) // tag
	binary.Write(dir, binary.LittleEndian, uint16(2))      // ascii string
	binary.Write(dir, binary.LittleEndian, uint32(len(payload)))
	binary.Write(dir, binary.LittleEndian, uint32(16+2+12-8)) // payload offset

	body := &bytes.Buffer{}
	segLen := 2 + 6 + 4 + 4 + dir.Len() + len(payload)
	binary.Write(body, binary.BigEndian, uint16(segLen))
	body.WriteString("Exif\x00\x00")
	body.Write([]byte{0x49, 0x49, 0x2A, 0x00})
	binary.Write(body, binary.LittleEndian, uint32(8))
	body.Write(dir.Bytes())
	body.Write(payload)

	buf := &bytes.Buffer{}
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// setupPhotoDir creates a directory tree with a mix of dated, undated,
// broken, and irrelevant files.
func setupPhotoDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel string, data []byte) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}

	write("late.jpg", jpegWithTimestamp("2023:07:04 10:30:00"))
	write("album/early.jpeg", jpegWithTimestamp("2021:01:01 09:00:00"))
	write("undated.jpg", jpegWithTimestamp(""))
	write("broken.jpg", []byte("not a jpeg at all"))
	write("notes.txt", []byte("ignored"))
	write(".hidden/secret.jpg", jpegWithTimestamp("2019:01:01 00:00:00"))

	return root
}

func TestBuild(t *testing.T) {
	root := setupPhotoDir(t)

	idx, err := Build(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, idx)

	assert.Equal(t, root, idx.Root)
	assert.False(t, idx.BuiltAt.IsZero())

	// Dotfiles and non-JPEGs are excluded; broken files stay.
	require.Len(t, idx.Photos, 4)

	// Dated photos ascending, undated after, ties by relative path.
	assert.Equal(t, "album/early.jpeg", idx.Photos[0].RelPath)
	assert.Equal(t, "late.jpg", idx.Photos[1].RelPath)
	assert.Equal(t, "broken.jpg", idx.Photos[2].RelPath)
	assert.Equal(t, "undated.jpg", idx.Photos[3].RelPath)
}

func TestBuild_PhotoFields(t *testing.T) {
	root := setupPhotoDir(t)

	idx, err := Build(context.Background(), root)
	require.NoError(t, err)

	byRel := map[string]Photo{}
	for _, p := range idx.Photos {
		byRel[p.RelPath] = p
	}

	early := byRel["album/early.jpeg"]
	require.NotNil(t, early.Taken)
	assert.Equal(t, 2021, early.Taken.Year())
	assert.Empty(t, early.Err)
	assert.Positive(t, early.Size)
	assert.False(t, early.ModTime.IsZero())

	undated := byRel["undated.jpg"]
	assert.Nil(t, undated.Taken)
	assert.Empty(t, undated.Err)

	broken := byRel["broken.jpg"]
	assert.Nil(t, broken.Taken)
	assert.NotEmpty(t, broken.Err, "unparseable files should carry their error")
}

func TestBuild_EmptyDir(t *testing.T) {
	idx, err := Build(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, idx.Photos)
}

func TestBuild_MissingDir(t *testing.T) {
	_, err := Build(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestBuild_Cancelled(t *testing.T) {
	root := setupPhotoDir(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
