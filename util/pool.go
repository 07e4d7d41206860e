package util

import "sync"

// DefaultBufSize is the copy buffer size for relay traffic.  32 KiB
// matches io.Copy's internal default, so the pooled path never moves
// data in smaller chunks than plain io.Copy would.
const DefaultBufSize = 32 * 1024

// bufPool recycles copy buffers.  [BidirectionalCopy] takes two per
// connection (one per direction), so with -k a long-lived listener
// would otherwise allocate 64 KiB of garbage per accepted client.
var bufPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, DefaultBufSize)
		return &buf
	},
}

// GetBuf retrieves a DefaultBufSize buffer from the pool.  Callers
// must return it with [PutBuf] when finished.
func GetBuf() *[]byte {
	return bufPool.Get().(*[]byte)
}

// PutBuf returns a buffer to the pool for reuse.
func PutBuf(buf *[]byte) {
	if buf == nil {
		return
	}
	bufPool.Put(buf)
}
