package exif

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"
)

// testEntry describes one directory entry for buildExifJPEG. The value
// is either given inline (at most 4 bytes, zero-padded) or placed out of
// line with the offset filled in automatically.
type testEntry struct {
	tag      uint16
	typeCode uint16
	count    uint32
	inline   []byte
	indirect []byte
}

// buildExifJPEG creates a minimal JPEG whose first marker is an APP1
// segment holding a little-endian TIFF structure with the given IFD0
// entries.
func buildExifJPEG(entries ...testEntry) []byte {
	// Directory sits right after the 16-byte segment header, which is
	// TIFF offset 8.
	const dirStart = 16

	dir := &bytes.Buffer{}
	binary.Write(dir, binary.LittleEndian, uint16(len(entries)))

	payload := &bytes.Buffer{}
	payloadBase := dirStart + 2 + 12*len(entries)

	for _, e := range entries {
		binary.Write(dir, binary.LittleEndian, e.tag)
		binary.Write(dir, binary.LittleEndian, e.typeCode)
		binary.Write(dir, binary.LittleEndian, e.count)
		if e.indirect != nil {
			// Offsets are relative to the TIFF signature at segment
			// offset 8.
			off := payloadBase + payload.Len() - 8
			binary.Write(dir, binary.LittleEndian, uint32(off))
			payload.Write(e.indirect)
		} else {
			var v [4]byte
			copy(v[:], e.inline)
			dir.Write(v[:])
		}
	}

	body := &bytes.Buffer{}
	// Segment length includes the two length bytes.
	segLen := 2 + 6 + 4 + 4 + dir.Len() + payload.Len()
	binary.Write(body, binary.BigEndian, uint16(segLen))
	body.WriteString("Exif\x00\x00")
	body.Write([]byte{0x49, 0x49, 0x2A, 0x00})
	binary.Write(body, binary.LittleEndian, uint32(8)) // IFD0 offset
	body.Write(dir.Bytes())
	body.Write(payload.Bytes())

	buf := &bytes.Buffer{}
	buf.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	buf.Write(body.Bytes())
	return buf.Bytes()
}

// dateTimeEntry builds a NUL-terminated ascii-string entry for the
// capture timestamp tag.
func dateTimeEntry(s string) testEntry {
	raw := append([]byte(s), 0x00)
	return testEntry{
		tag:      tagDateTimeOriginal,
		typeCode: 2,
		count:    uint32(len(raw)),
		indirect: raw,
	}
}

func TestExtract_RoundTrip(t *testing.T) {
	data := buildExifJPEG(dateTimeEntry("2023:07:04 10:30:00"))

	res, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !res.Found {
		t.Fatal("expected timestamp to be found")
	}

	want := time.Date(2023, time.July, 4, 10, 30, 0, 0, time.UTC)
	if !res.Taken.Equal(want) {
		t.Errorf("expected %v, got %v", want, res.Taken)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

func TestExtract_NoMetadata(t *testing.T) {
	// Valid SOI followed by an APP0 segment instead of APP1.
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x02}

	res, err := Extract(data)
	if err != nil {
		t.Fatalf("expected no error for metadata-free JPEG, got %v", err)
	}
	if res.Found {
		t.Error("expected no timestamp")
	}
}

func TestExtract_NoTimestampEntry(t *testing.T) {
	// Directory with one unrelated short entry.
	data := buildExifJPEG(testEntry{
		tag:      0x0112,
		typeCode: 3,
		count:    1,
		inline:   []byte{0x01, 0x00},
	})

	res, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.Found {
		t.Error("expected no timestamp")
	}
}

func TestExtract_WrongTypedTimestamp(t *testing.T) {
	// The timestamp tag declared as an unsigned long must be a hard
	// failure, not a silent absence.
	data := buildExifJPEG(testEntry{
		tag:      tagDateTimeOriginal,
		typeCode: 4,
		count:    1,
		inline:   []byte{0x01, 0x00, 0x00, 0x00},
	})

	res, err := Extract(data)
	if err == nil {
		t.Fatalf("expected error, got %+v", res)
	}
	if !contains(err.Error(), "unsigned long") || !contains(err.Error(), "ascii string") {
		t.Errorf("error should name both types, got: %v", err)
	}
}

func TestExtract_UnknownTypesElsewhere(t *testing.T) {
	// Unrecognized type codes before the timestamp entry must be
	// skipped with warnings, not abort the parse.
	data := buildExifJPEG(
		testEntry{tag: 0x0100, typeCode: 99, count: 1, inline: []byte{0x00}},
		testEntry{tag: 0x0101, typeCode: 0, count: 1, inline: []byte{0x00}},
		dateTimeEntry("2021:01:02 03:04:05"),
	)

	res, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !res.Found {
		t.Fatal("expected timestamp despite unknown entries")
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(res.Warnings), res.Warnings)
	}
	if res.Warnings[0].Stage != "directory" {
		t.Errorf("expected directory stage, got %q", res.Warnings[0].Stage)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	data := buildExifJPEG(
		testEntry{tag: 0x0100, typeCode: 99, count: 1, inline: []byte{0x00}},
		dateTimeEntry("2023:07:04 10:30:00"),
	)

	first, err1 := Extract(data)
	second, err2 := Extract(data)

	if err1 != nil || err2 != nil {
		t.Fatalf("Extract failed: %v / %v", err1, err2)
	}
	if !first.Taken.Equal(second.Taken) || first.Found != second.Found {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
	if len(first.Warnings) != len(second.Warnings) {
		t.Errorf("warning counts differ: %d vs %d", len(first.Warnings), len(second.Warnings))
	}
}

func TestExtract_MissingSOI(t *testing.T) {
	res, err := Extract([]byte("INVALID"))
	if err == nil {
		t.Fatalf("expected error, got %+v", res)
	}
	if !contains(err.Error(), "missing SOI") {
		t.Errorf("expected missing SOI error, got: %v", err)
	}
}

func contains(s, sub string) bool {
	return bytes.Contains([]byte(s), []byte(sub))
}
