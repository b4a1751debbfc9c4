package tui

import "github.com/mmcdole/myreads/internal/domain"

// ChannelObserver adapts domain.SyncObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.ShelfSync
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.ShelfSync) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnShelfSync sends the outcome to the channel (non-blocking if full).
// Dropped outcomes are still logged and counted by the store.
func (o *ChannelObserver) OnShelfSync(sync domain.ShelfSync) {
	select {
	case o.ch <- sync:
	default:
	}
}
