package sim

import (
	"sync"
	"sync/atomic"
)

// FramePool recycles flat pixel buffers of a fixed length. A renderer holds a
// frame for exactly one iteration and returns it before the next is acquired.
type FramePool struct {
	pool  sync.Pool
	size  int
	inUse atomic.Int64
}

func NewFramePool(frameSize int) *FramePool {
	return &FramePool{
		size: frameSize,
		pool: sync.Pool{
			New: func() any {
				return make([]byte, frameSize)
			},
		},
	}
}

func (p *FramePool) Size() int { return p.size }

func (p *FramePool) Get() []byte {
	p.inUse.Add(1)
	return p.pool.Get().([]byte)
}

// InUse counts buffers handed out by Get and not yet returned.
func (p *FramePool) InUse() int64 { return p.inUse.Load() }

// Put zeroes and recycles buf. Buffers of a foreign length are dropped.
func (p *FramePool) Put(buf []byte) {
	if len(buf) != p.size {
		return
	}
	clear(buf)
	p.inUse.Add(-1)
	p.pool.Put(buf)
}

func (p *FramePool) GetAndCopy(src []byte) []byte {
	dst := p.Get()
	copy(dst, src)
	return dst
}
