// Package bookshelf loads a Polyglot-format opening book and probes it by
// position. It is a shell-side collaborator, not part of the engine core:
// the search kernel itself never consults a book, but a human-vs-engine
// session still wants one available, so this package keeps that behavior
// reachable from cmd/kestrel without engine.Player ever depending on it.
package bookshelf

import (
	"encoding/binary"
	"fmt"
	"os"

	"kestrel/engine"
)

// entrySize is the Polyglot book record layout: an 8-byte Zobrist key, a
// 2-byte move, a 2-byte weight, and a 4-byte learn counter, all big-endian.
const entrySize = 16

// Entry is one decoded book record.
type Entry struct {
	Key    uint64
	Move   string // coordinate notation, e.g. "e2e4" or "a7a8q"
	Weight uint16
	Learn  uint32
}

// Book maps a position's Polyglot hash to every book entry recorded for it;
// a position can have more than one recommended move, so the value is a
// slice kept in file order (which Polyglot convention uses as a rough
// preference order, heaviest weight first within a well-formed book).
type Book map[uint64][]Entry

// Load reads a Polyglot .bin file from path. A missing or truncated file is
// reported as an error rather than a panic — the caller (cmd/kestrel) is
// expected to treat a failed book load as "play without a book."
func Load(path string) (Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	book := make(Book)
	var raw [entrySize]byte
	for {
		_, err := readFull(f, raw[:])
		if err == errEOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveBits := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])
		learn := binary.BigEndian.Uint32(raw[12:16])

		move, ok := decodeMove(moveBits)
		if !ok {
			continue // a null move record; skip rather than fail the whole load
		}
		book[key] = append(book[key], Entry{Key: key, Move: move, Weight: weight, Learn: learn})
	}
	return book, nil
}

var errEOF = fmt.Errorf("bookshelf: eof")

// readFull fills buf completely or returns errEOF if the file ends exactly
// on a record boundary (a partial trailing record is a genuine error).
func readFull(f *os.File, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		read, err := f.Read(buf[n:])
		n += read
		if err != nil {
			if n == 0 {
				return n, errEOF
			}
			return n, fmt.Errorf("bookshelf: truncated record: %w", err)
		}
	}
	return n, nil
}

// decodeMove unpacks Polyglot's 16-bit move encoding: bits 0-2 destination
// file, 3-5 destination rank, 6-8 source file, 9-11 source rank, 12-14
// promotion piece (0=none, 1=knight, 2=bishop, 3=rook, 4=queen). A zero
// value conventionally marks "no book move" and is reported as !ok.
func decodeMove(bits uint16) (string, bool) {
	if bits == 0 {
		return "", false
	}
	toFile := int(bits & 0x7)
	toRank := int((bits >> 3) & 0x7)
	fromFile := int((bits >> 6) & 0x7)
	fromRank := int((bits >> 9) & 0x7)
	promo := int((bits >> 12) & 0x7)

	s := fmt.Sprintf("%c%d%c%d", 'a'+fromFile, fromRank+1, 'a'+toFile, toRank+1)
	switch promo {
	case 1:
		s += "n"
	case 2:
		s += "b"
	case 3:
		s += "r"
	case 4:
		s += "q"
	}
	return s, true
}

// Probe returns the book entries recorded for pos, if any.
func (b Book) Probe(pos *engine.Position) ([]Entry, bool) {
	entries, ok := b[Hash(pos)]
	return entries, ok
}

// BestMove returns the highest-weighted entry's move for pos, if the book
// has one.
func (b Book) BestMove(pos *engine.Position) (string, bool) {
	entries, ok := b.Probe(pos)
	if !ok || len(entries) == 0 {
		return "", false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Weight > best.Weight {
			best = e
		}
	}
	return best.Move, true
}
