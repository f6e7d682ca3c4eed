package png2koala

import (
	"fmt"
	"io"
)

// A Word is a 16 bit C64 memory address.
type Word uint16

func (w Word) String() string {
	return fmt.Sprintf("0x%04x", uint16(w))
}

func (w Word) Low() byte {
	return byte(w & 0xff)
}

func (w Word) High() byte {
	return byte(w >> 8)
}

// Bytes returns w in little endian order, as used in prg load addresses.
func (w Word) Bytes() []byte {
	return []byte{w.Low(), w.High()}
}

func BytesToWord(bLo, bHi byte) Word {
	return Word(uint16(bHi)<<8 | uint16(bLo))
}

const MaxMemory = 0xffff

// A Linker places byte slices in a 64KB memory image and writes the used range as a .prg.
type Linker struct {
	cursor  Word
	payload [MaxMemory + 1]byte
	used    [MaxMemory + 1]bool
}

// NewLinker returns an empty linker with cursor set to start.
func NewLinker(start Word) *Linker {
	return &Linker{cursor: start}
}

// Cursor returns the memory address where the next Write will be stored.
func (l *Linker) Cursor() Word {
	return l.cursor
}

// SetCursor sets the memory address where the next Write will be stored.
func (l *Linker) SetCursor(v Word) {
	l.cursor = v
}

// CursorWrite sets the cursor and writes b to payload.
func (l *Linker) CursorWrite(cursor Word, b []byte) (n int, err error) {
	l.cursor = cursor
	return l.Write(b)
}

// Write writes b to payload at cursor address and increases the cursor with amount of bytes written.
func (l *Linker) Write(b []byte) (n int, err error) {
	if int(l.cursor)+len(b) > MaxMemory+1 {
		return n, fmt.Errorf("linker: out of memory error, cursor %s, length 0x%04x", l.cursor, len(b))
	}
	for i := 0; i < len(b); i++ {
		if l.used[l.cursor] {
			return n, fmt.Errorf("linker: memory overlap error, cursor %s, length 0x%04x", l.cursor, len(b)-i)
		}
		l.payload[l.cursor] = b[i]
		l.used[l.cursor] = true
		l.cursor++
		n++
	}
	return n, nil
}

// StartAddress returns the memory location of the first used byte.
func (l *Linker) StartAddress() Word {
	for i := 0; i <= MaxMemory; i++ {
		if l.used[i] {
			return Word(i)
		}
	}
	return MaxMemory
}

// EndAddress returns the memory location of the last used byte + 1.
func (l *Linker) EndAddress() int {
	for i := MaxMemory; i >= 0; i-- {
		if l.used[i] {
			return i + 1
		}
	}
	return 0
}

// Bytes returns the payload from the first to the last used byte, gaps are zero.
func (l *Linker) Bytes() []byte {
	start, end := int(l.StartAddress()), l.EndAddress()
	if end <= start {
		return []byte{}
	}
	return l.payload[start:end]
}

// WriteTo writes the 2 byte start address followed by all linked memory to w.
func (l *Linker) WriteTo(w io.Writer) (n int64, err error) {
	start, end := l.StartAddress(), l.EndAddress()
	if int(start) >= end {
		return n, fmt.Errorf("linker: nothing to write, start %s, end 0x%04x", start, end)
	}
	m, err := w.Write(start.Bytes())
	n = int64(m)
	if err != nil {
		return n, fmt.Errorf("linker: Write failed start address %s: %w", start, err)
	}
	m, err = w.Write(l.payload[start:end])
	n += int64(m)
	if err != nil {
		return n, fmt.Errorf("linker: Write failed %s - 0x%04x: %w", start, end, err)
	}
	return n, nil
}
