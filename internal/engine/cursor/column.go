package cursor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// VisualColumn returns the on-screen column of the byte at offset
// within line, counting grapheme clusters at their rendered width and
// expanding tabs to the next tabWidth stop. Offsets inside a cluster
// resolve to the cluster's starting column.
func VisualColumn(line []byte, offset, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	col := 0
	consumed := 0
	g := uniseg.NewGraphemes(string(line))
	for g.Next() {
		if consumed >= offset {
			break
		}
		cluster := g.Str()
		if cluster == "\t" {
			col += tabWidth - col%tabWidth
		} else {
			col += runewidth.StringWidth(cluster)
		}
		consumed += len(cluster)
	}
	return col
}

// ColumnToByte returns the byte offset within line whose visual column
// is closest to target without exceeding it. Columns past the end of
// the line resolve to len(line).
func ColumnToByte(line []byte, target, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	if target <= 0 {
		return 0
	}
	col := 0
	offset := 0
	g := uniseg.NewGraphemes(string(line))
	for g.Next() {
		cluster := g.Str()
		var w int
		if cluster == "\t" {
			w = tabWidth - col%tabWidth
		} else {
			w = runewidth.StringWidth(cluster)
		}
		if col+w > target {
			return offset
		}
		col += w
		offset += len(cluster)
	}
	return offset
}
