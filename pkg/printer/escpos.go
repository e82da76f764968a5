package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
	FontWide   = 0x10 // double width only
	FontTall   = 0x01 // double height only
)

// Document builds an ESC/POS byte stream for thermal receipt printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on one line.
// Example: "Subtotal                  900.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints a receipt item: name on the first line, then an indented
// "qty x unit" breakdown with the right-aligned line total.
//
//	Polo Shirt (M / Navy)
//	  2 x 450.00               900.00
func (d *Document) ItemLine(name string, qty int, unit, total string) *Document {
	if runes := []rune(name); len(runes) > d.width {
		name = string(runes[:d.width])
	}
	d.buf.WriteString(name)
	d.buf.WriteByte(LF)

	detail := fmt.Sprintf("  %d x %s", qty, unit)
	spaces := d.width - utf8.RuneCountInString(detail) - utf8.RuneCountInString(total)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(detail)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(total)
	d.buf.WriteByte(LF)
	return d
}

// Barcode prints a CODE39 barcode, typically the order number, so a receipt
// can be re-scanned at the returns desk.
func (d *Document) Barcode(code string) *Document {
	if code == "" {
		return d
	}
	// GS h: height, GS w: module width, GS k 4: CODE39 (NUL-terminated)
	d.buf.Write([]byte{GS, 'h', 64})
	d.buf.Write([]byte{GS, 'w', 2})
	d.buf.Write([]byte{GS, 'k', 4})
	d.buf.WriteString(code)
	d.buf.WriteByte(0)
	d.buf.WriteByte(LF)
	return d
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
