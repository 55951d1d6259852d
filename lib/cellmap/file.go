package cellmap

/* file.go handles cell-map persistence. The plain-text dump is a
human-readable debug artifact: one line per unit-cell lattice vector with its
integer lattice coordinates and Cartesian offsets. The binary cache is the
round-trippable format: a small clear header followed by a zstd-compressed
payload holding the lattice and the weights. */

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/DataDog/zstd"

	"github.com/phil-mansfield/bravais/lib/geom"
)

const (
	// MagicNumber is an arbitrary number at the start of every cell-map
	// cache file, used to catch files that aren't cell-map caches at all.
	MagicNumber = 0xce11ab70
	// ReverseMagicNumber is the magic number as read on a machine with
	// flipped endianness.
	ReverseMagicNumber = 0x70ab11ce
	Version = 1
)

// Write dumps the cell map as plain text: a single header comment line, then
// one fixed-width line per unit-cell lattice vector giving its three integer
// lattice coordinates and the Cartesian position R*i. Weights are not part of
// this format; it exists for humans and plotting scripts, and the in-memory
// Map stays the authoritative interface.
func (m Map) Write(fname string, R geom.Mat) error {
	f, err := os.Create(fname)
	if err != nil { return err }
	defer f.Close()

	_, err = fmt.Fprintf(f, "#i0 i1 i2  x y z  " +
		"(integer lattice combinations, and cartesian offsets)\n")
	if err != nil { return err }

	for _, iCell := range m.SortedCells() {
		r := R.MulVec(iCell.Float())
		_, err = fmt.Fprintf(f, "%+2d %+2d %+2d  %+11.6f %+11.6f %+11.6f\n",
			iCell[0], iCell[1], iCell[2], r[0], r[1], r[2])
		if err != nil { return err }
	}
	return nil
}

// WriteCache writes the cell map and its unit lattice to a compressed binary
// cache file. In a multi-process run exactly one process should call this;
// everyone else proceeds with the in-memory map.
func (m Map) WriteCache(fname string, R geom.Mat) error {
	order := binary.ByteOrder(binary.LittleEndian)

	payload := &bytes.Buffer{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if err := binary.Write(payload, order, R[i][j]); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(payload, order, int64(len(m))); err != nil {
		return err
	}
	for _, iCell := range m.SortedCells() {
		rec := [3]int64{ int64(iCell[0]), int64(iCell[1]), int64(iCell[2]) }
		if err := binary.Write(payload, order, rec); err != nil { return err }
		if err := binary.Write(payload, order, m[iCell]); err != nil {
			return err
		}
	}

	compressed, err := zstd.Compress(nil, payload.Bytes())
	if err != nil { return err }

	f, err := os.Create(fname)
	if err != nil { return err }
	defer f.Close()

	if err := binary.Write(f, order, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(f, order, uint32(Version)); err != nil {
		return err
	}
	_, err = f.Write(compressed)
	return err
}

// ReadCache reads a cell-map cache file written by WriteCache and returns the
// map along with the unit lattice it was built for.
func ReadCache(fname string) (Map, geom.Mat, error) {
	f, err := os.Open(fname)
	if err != nil { return nil, geom.Mat{ }, err }
	defer f.Close()

	order, err := checkCacheFile(fname, f)
	if err != nil { return nil, geom.Mat{ }, err }

	compressed, err := ioutil.ReadAll(f)
	if err != nil { return nil, geom.Mat{ }, err }
	raw, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return nil, geom.Mat{ }, fmt.Errorf("The cell map cache %s could " +
			"not be decompressed: %s", fname, err.Error())
	}
	payload := bytes.NewReader(raw)

	R := geom.Mat{ }
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if err := binary.Read(payload, order, &R[i][j]); err != nil {
				return nil, geom.Mat{ }, err
			}
		}
	}
	var n int64
	if err := binary.Read(payload, order, &n); err != nil {
		return nil, geom.Mat{ }, err
	}

	m := make(Map, n)
	for k := int64(0); k < n; k++ {
		var rec [3]int64
		var weight float64
		if err := binary.Read(payload, order, &rec); err != nil {
			return nil, geom.Mat{ }, err
		}
		if err := binary.Read(payload, order, &weight); err != nil {
			return nil, geom.Mat{ }, err
		}
		m[geom.IVec{ int(rec[0]), int(rec[1]), int(rec[2]) }] = weight
	}
	return m, R, nil
}

// checkCacheFile reads the magic and version numbers and makes sure bravais
// can actually read the file. If it can, the file's byte order is returned.
func checkCacheFile(fname string, f *os.File) (binary.ByteOrder, error) {
	var magicNumber, version uint32

	order := binary.ByteOrder(binary.LittleEndian)
	if err := binary.Read(f, order, &magicNumber); err != nil {
		return nil, err
	}

	switch magicNumber {
	case MagicNumber:
	case ReverseMagicNumber: order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%s is not a cell map cache. All cell map " +
			"caches begin with the 32-bit integer %x or %x, but this file " +
			"begins with %x.", fname, uint32(MagicNumber),
			uint32(ReverseMagicNumber), magicNumber)
	}

	if err := binary.Read(f, order, &version); err != nil { return nil, err }
	if version > Version {
		return nil, fmt.Errorf("The file %s was created with cell map " +
			"format version %d, but this version of bravais only reads up " +
			"to version %d.", fname, version, Version)
	}
	return order, nil
}
