package main

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Useful test file to confirm what actually sits in a photo's root IFD.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ifd-dump <file.jpg>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	dumpIFD(data)
}

func dumpIFD(data []byte) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		fmt.Println("not a JPEG (missing SOI)")
		return
	}
	if data[3] != 0xE1 {
		fmt.Printf("first marker is 0xFF%02X, not APP1; no metadata\n", data[3])
		return
	}

	length := binary.BigEndian.Uint16(data[4:6])
	if int(4+length) > len(data) {
		fmt.Println("truncated APP1 segment")
		return
	}
	app1 := data[4 : 4+length]
	fmt.Printf("APP1 segment: %d bytes\n", length)

	if len(app1) < 16 {
		fmt.Println("segment too small for TIFF header")
		return
	}
	fmt.Printf("Exif signature: % X\n", app1[2:8])
	fmt.Printf("TIFF signature: % X\n", app1[8:12])

	ifd0 := binary.LittleEndian.Uint32(app1[12:16])
	dir := int(ifd0) + 8
	fmt.Printf("IFD0 at segment offset %d\n", dir)

	if dir+2 > len(app1) {
		fmt.Println("IFD0 offset out of range")
		return
	}
	count := binary.LittleEndian.Uint16(app1[dir : dir+2])
	fmt.Printf("%d entries:\n", count)

	for i := 0; i < int(count); i++ {
		off := dir + 2 + 12*i
		if off+12 > len(app1) {
			fmt.Printf("  [%d] truncated\n", i)
			return
		}
		rec := app1[off : off+12]
		tag := binary.LittleEndian.Uint16(rec[0:2])
		typeCode := binary.LittleEndian.Uint16(rec[2:4])
		components := binary.LittleEndian.Uint32(rec[4:8])
		inline := binary.LittleEndian.Uint32(rec[8:12])

		fmt.Printf("  [%d] tag=0x%04X type=%d count=%d value/offset=0x%08X\n",
			i, tag, typeCode, components, inline)
	}
}
