package shm

import (
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

const dumpRowLen = 16

// Dump writes a hexdump of the view's bytes to w: a header line with name,
// size and mode, then 16 bytes per row with an ASCII gutter. It is a
// debugging aid; dumping a large region produces proportionally large
// output.
func Dump(w io.Writer, v View) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if !v.IsValid() {
		fmt.Fprintf(buf, "shm %q: <unmapped>\n", v.Name())
		_, err := w.Write(buf.B)
		return err
	}

	fmt.Fprintf(buf, "shm %q: %d bytes, %s\n", v.Name(), v.Size(), v.Mode())
	data := v.Bytes()
	for off := 0; off < len(data); off += dumpRowLen {
		end := off + dumpRowLen
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(buf, "%08x  ", off)
		for i := 0; i < dumpRowLen; i++ {
			if i < len(row) {
				fmt.Fprintf(buf, "%02x ", row[i])
			} else {
				_, _ = buf.WriteString("   ")
			}
			if i == dumpRowLen/2-1 {
				_ = buf.WriteByte(' ')
			}
		}
		_, _ = buf.WriteString(" |")
		for _, b := range row {
			if b < 0x20 || b > 0x7e {
				b = '.'
			}
			_ = buf.WriteByte(b)
		}
		_, _ = buf.WriteString("|\n")
	}

	_, err := w.Write(buf.B)
	return err
}
