package buffer

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/inkstone-edit/inkstone/internal/engine/store"
)

const (
	// defaultScanChunkSize bounds how much lineToByte scans per
	// iteration before rechecking whether the line has been found.
	defaultScanChunkSize = 64 * 1024

	// registerMaxGap is the largest unscanned gap RegisterLineStart
	// will close. Beyond this the hint is discarded.
	registerMaxGap = 10_000

	// registerMaxExtension bounds how far past the current frontier a
	// single RegisterLineStart call scans.
	registerMaxExtension = 1000

	// defaultAvgLineLength is the line-length assumption used for
	// estimates when nothing has been scanned yet.
	defaultAvgLineLength = 80
)

// lineIndex caches line start offsets for byte<->line conversion. The
// cache is built lazily: it tracks a scanned frontier and extends it
// only as far as lookups demand. starts[0] is always 0 and every other
// entry is the offset just past a newline.
//
// Lookups that appear read-only mutate the cache, so the index has its
// own lock rather than relying on the buffer's.
type lineIndex struct {
	mu           sync.Mutex
	starts       []int
	valid        bool
	fullyScanned bool
	scannedUpTo  int
	chunkSize    int
}

func newLineIndex(chunkSize int) *lineIndex {
	if chunkSize <= 0 {
		chunkSize = defaultScanChunkSize
	}
	return &lineIndex{
		starts:       []int{0},
		valid:        true,
		fullyScanned: true,
		chunkSize:    chunkSize,
	}
}

// rebuild fully scans text and replaces the cache.
func (x *lineIndex) rebuild(text []byte) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.starts = x.starts[:0]
	x.starts = append(x.starts, 0)
	for i, b := range text {
		if b == '\n' {
			x.starts = append(x.starts, i+1)
		}
	}
	x.valid = true
	x.fullyScanned = true
	x.scannedUpTo = len(text)
}

// invalidate marks the whole cache stale. The next lookup rescans from
// the beginning.
func (x *lineIndex) invalidate() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.valid = false
	x.fullyScanned = false
	x.scannedUpTo = 0
}

// resetLocked reinitializes an invalidated cache for scanning.
func (x *lineIndex) resetLocked() {
	x.starts = x.starts[:0]
	x.starts = append(x.starts, 0)
	x.scannedUpTo = 0
	x.valid = true
}

// ensureScannedTo extends the scanned frontier to at least target.
func (x *lineIndex) ensureScannedTo(s store.Store, target int) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ensureScannedToLocked(s, target)
}

func (x *lineIndex) ensureScannedToLocked(s store.Store, target int) {
	if x.fullyScanned {
		return
	}
	if !x.valid {
		x.resetLocked()
	}
	if target <= x.scannedUpTo {
		return
	}

	scanFrom := x.scannedUpTo
	scanTo := min(target, s.Len())
	slog.Debug("scanning line index",
		"from", scanFrom, "to", scanTo, "len", s.Len())

	it := s.Bytes(scanFrom, scanTo)
	for it.Next() {
		if it.Byte() == '\n' {
			x.starts = append(x.starts, it.Pos()+1)
		}
	}
	x.scannedUpTo = scanTo
	x.fullyScanned = scanTo >= s.Len()
}

// lineToByte returns the byte offset where line starts, scanning
// forward one chunk at a time until the line is found. Lines past the
// end of the content resolve to the content length.
func (x *lineIndex) lineToByte(s store.Store, line int) int {
	if line <= 0 {
		return 0
	}
	x.mu.Lock()
	defer x.mu.Unlock()

	for {
		if x.valid && line < len(x.starts) {
			return x.starts[line]
		}
		if x.fullyScanned {
			return s.Len()
		}
		target := x.scannedUpTo + x.chunkSize
		if !x.valid {
			target = x.chunkSize
		}
		x.ensureScannedToLocked(s, target)
	}
}

// byteToLineLazy converts a byte offset to a line number without
// scanning. Offsets inside the scanned prefix resolve exactly; beyond
// it the result is estimated from the average scanned line length.
func (x *lineIndex) byteToLineLazy(s store.Store, pos int) LineNumber {
	pos = min(pos, s.Len())
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.valid && (x.fullyScanned || pos <= x.scannedUpTo) {
		return Absolute(x.byteToLineLocked(pos))
	}

	lastKnownLine := 0
	lastKnownByte := 0
	if x.valid {
		lastKnownLine = len(x.starts) - 1
		lastKnownByte = x.scannedUpTo
	}

	avg := defaultAvgLineLength
	if lastKnownLine > 0 {
		avg = lastKnownByte / lastKnownLine
	}
	estimated := 0
	if avg > 0 {
		estimated = (pos - lastKnownByte) / avg
	}
	return Relative(lastKnownLine+estimated, lastKnownLine)
}

func (x *lineIndex) byteToLineLocked(pos int) int {
	i := sort.SearchInts(x.starts, pos)
	if i < len(x.starts) && x.starts[i] == pos {
		return i
	}
	return max(i-1, 0)
}

// registerLineStart records a caller-observed line start at pos,
// extending the scanned frontier opportunistically. The extension is
// bounded: gaps over registerMaxGap are refused outright and a single
// call scans at most registerMaxExtension bytes past the frontier.
func (x *lineIndex) registerLineStart(s store.Store, pos int) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.valid && (x.fullyScanned || pos <= x.scannedUpTo) {
		return
	}
	if x.valid && pos > x.scannedUpTo+registerMaxGap {
		return
	}
	if !x.valid {
		if pos > registerMaxGap {
			return
		}
		x.resetLocked()
	}
	if pos <= x.scannedUpTo {
		return
	}

	lineEnd := scanLineEnd(s, pos)
	scanTo := min(lineEnd, x.scannedUpTo+registerMaxExtension)
	scanTo = min(scanTo, max(s.Len()-1, 0))

	it := s.Bytes(x.scannedUpTo, scanTo)
	for it.Next() {
		if it.Byte() == '\n' {
			x.starts = append(x.starts, it.Pos()+1)
		}
	}
	x.scannedUpTo = scanTo
	if x.scannedUpTo >= s.Len() {
		x.fullyScanned = true
	}
}

// approximateLineCount returns the line count once the content has
// been fully scanned.
func (x *lineIndex) approximateLineCount() (int, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.valid && x.fullyScanned {
		return len(x.starts), true
	}
	return 0, false
}

// frontier returns how far the index has scanned. Used by tests.
func (x *lineIndex) frontier() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.valid {
		return 0
	}
	return x.scannedUpTo
}

// cachedCount returns how many line starts are cached. Used by tests.
func (x *lineIndex) cachedCount() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.valid {
		return 0
	}
	return len(x.starts)
}
