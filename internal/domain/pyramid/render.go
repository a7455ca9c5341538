package pyramid

import (
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

const (
	// EmptyText is rendered in place of a pyramid when there are no players.
	EmptyText = "No players yet"

	interiorWidth = 17
	boxWidth      = interiorWidth + 2
	boxLines      = 3
)

// Render draws players, given in rank order, as a pyramid of boxes: the top
// player alone on the first row and each following row twice as wide as the
// one above. The deepest row is padded with blank boxes.
func Render(players []string) string {
	if len(players) == 0 {
		return EmptyText
	}

	rows := rowCount(len(players))
	widths := blockWidths(rows)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for row := 0; row < rows; row++ {
		first := 1<<row - 1
		slots := 1 << row
		indent := (widths[row] - boxWidth) / 2

		for line := 0; line < boxLines; line++ {
			if row > 0 || line > 0 {
				_ = buf.WriteByte('\n')
			}
			for slot := 0; slot < slots; slot++ {
				if slot > 0 {
					_ = buf.WriteByte(' ')
				}
				writeSpaces(buf, indent)

				name, occupied := "", first+slot < len(players)
				if occupied {
					name = players[first+slot]
				}
				writeBoxLine(buf, line, name)

				if slot < slots-1 {
					writeSpaces(buf, widths[row]-indent-boxWidth)
				}
			}
		}
	}

	return buf.String()
}

// rowCount returns the number of rows needed to hold n players.
func rowCount(n int) int {
	rows := 0
	for capacity := 0; capacity < n; rows++ {
		capacity += 1 << rows
	}
	return rows
}

// blockWidths returns the column span of one block on each row. A block on the
// deepest row is a single box; any other block spans its two children and the
// column separating them.
func blockWidths(rows int) []int {
	widths := make([]int, rows)
	widths[rows-1] = boxWidth
	for row := rows - 2; row >= 0; row-- {
		widths[row] = 2*widths[row+1] + 1
	}
	return widths
}

func writeBoxLine(buf *bytebufferpool.ByteBuffer, line int, name string) {
	if line != 1 {
		_, _ = buf.WriteString(strings.Repeat("-", boxWidth))
		return
	}

	name = truncate(name, interiorWidth)
	remaining := interiorWidth - utf8.RuneCountInString(name)
	left := remaining / 2

	_ = buf.WriteByte('|')
	writeSpaces(buf, left)
	_, _ = buf.WriteString(name)
	writeSpaces(buf, remaining-left)
	_ = buf.WriteByte('|')
}

func truncate(name string, limit int) string {
	if utf8.RuneCountInString(name) <= limit {
		return name
	}
	runes := []rune(name)
	return string(runes[:limit])
}

func writeSpaces(buf *bytebufferpool.ByteBuffer, n int) {
	if n <= 0 {
		return
	}
	_, _ = buf.WriteString(strings.Repeat(" ", n))
}
