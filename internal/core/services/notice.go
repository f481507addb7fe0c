package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

// NoticeTTL is how long a banner stays visible.
const NoticeTTL = 3 * time.Second

// NoticeBoard holds at most one transient banner. A banner disappears after
// its TTL, or when Clear is called with its sequence number.
type NoticeBoard struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	current domain.Notice
	expires time.Time
	seq     uint64
}

// NewNoticeBoard creates a board with the default TTL.
func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{ttl: NoticeTTL, now: time.Now}
}

// Post replaces the current banner.
func (b *NoticeBoard) Post(kind domain.NoticeKind, text string) domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.current = domain.Notice{Kind: kind, Text: text, Seq: b.seq}
	b.expires = b.now().Add(b.ttl)
	return b.current
}

// Current returns the banner if it has not expired.
func (b *NoticeBoard) Current() domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current.IsZero() {
		return domain.Notice{}
	}
	if !b.now().Before(b.expires) {
		b.current = domain.Notice{}
		return domain.Notice{}
	}
	return b.current
}

// Clear removes the banner only if seq still identifies it.
func (b *NoticeBoard) Clear(seq uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current.IsZero() || b.current.Seq != seq {
		return false
	}
	b.current = domain.Notice{}
	return true
}

// TTL returns the banner lifetime.
func (b *NoticeBoard) TTL() time.Duration {
	return b.ttl
}
