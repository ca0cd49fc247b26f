package buffer

// defaultLargeFileThreshold is the file size above which Load streams
// in chunks instead of reading wholesale.
const defaultLargeFileThreshold = 1024 * 1024

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithScanChunkSize sets how many bytes the line index scans per
// iteration when extending its frontier.
func WithScanChunkSize(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.scanChunkSize = n
		}
	}
}

// WithLargeFileThreshold sets the file size above which Load streams
// the file in chunks and leaves the line index lazy.
func WithLargeFileThreshold(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.largeFileThreshold = n
		}
	}
}
