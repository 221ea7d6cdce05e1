package domain

import "time"

// Slot is one persisted store snapshot. Payload is opaque JSON owned by the
// store that wrote it; Version is that store's schema tag.
type Slot struct {
	Key       string
	Version   int
	Payload   []byte
	UpdatedAt time.Time
	WrittenBy string
}
