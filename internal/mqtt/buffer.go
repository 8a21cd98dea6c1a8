package mqtt

import "github.com/rs/zerolog/log"

// bufferedMsg is a formatted message waiting for the broker to come back.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer keeps the newest messages published while disconnected.
// Once full, each push evicts the oldest entry.
// Not safe for concurrent use; RealPublisher guards it with its mutex.
type ringBuffer struct {
	slots   []bufferedMsg
	next    int // slot the next push writes to
	size    int
	dropped int // evictions since the last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{slots: make([]bufferedMsg, capacity)}
}

func (r *ringBuffer) push(msg bufferedMsg) {
	if r.size == len(r.slots) {
		if r.dropped == 0 {
			log.Warn().Int("capacity", len(r.slots)).Str("topic", msg.topic).Msg("mqtt: buffer full, dropping oldest")
		}
		r.dropped++
	} else {
		r.size++
	}
	r.slots[r.next] = msg
	r.next = (r.next + 1) % len(r.slots)
}

// drain empties the buffer, returning messages oldest first along with the
// number that were evicted to make room for them.
func (r *ringBuffer) drain() ([]bufferedMsg, int) {
	dropped := r.dropped
	if r.size == 0 {
		r.dropped = 0
		return nil, dropped
	}

	out := make([]bufferedMsg, 0, r.size)
	first := (r.next - r.size + len(r.slots)) % len(r.slots)
	for i := 0; i < r.size; i++ {
		j := (first + i) % len(r.slots)
		out = append(out, r.slots[j])
		r.slots[j] = bufferedMsg{}
	}

	r.next, r.size, r.dropped = 0, 0, 0
	return out, dropped
}

func (r *ringBuffer) len() int {
	return r.size
}
