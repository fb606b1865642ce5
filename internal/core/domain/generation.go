package domain

import (
	"strconv"
	"time"
)

// Generation is the persisted build generation marker. It is the sole
// coupling point to the serving layer's live-reload mechanism, so its
// JSON shape must stay stable and minimal.
type Generation struct {
	Value     int64 `json:"v"`
	UnixMilli int64 `json:"t"`
}

// String returns the counter value for log lines.
func (g Generation) String() string {
	return strconv.FormatInt(g.Value, 10)
}

// Next returns the successor generation stamped with the given time.
func (g Generation) Next(now time.Time) Generation {
	return Generation{
		Value:     g.Value + 1,
		UnixMilli: now.UnixMilli(),
	}
}
