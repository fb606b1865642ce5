package domain

import "time"

// ChangeSource identifies which detection mechanism produced a change event.
type ChangeSource int

const (
	// SourceNative marks events delivered by the native filesystem watcher.
	SourceNative ChangeSource = iota
	// SourcePoll marks synthetic events produced by the periodic mtime/size scan.
	SourcePoll
)

// String returns a human-readable name for the change source.
func (s ChangeSource) String() string {
	switch s {
	case SourceNative:
		return "native"
	case SourcePoll:
		return "poll"
	default:
		return "unknown"
	}
}

// ChangeEvent is a single detected modification of a source file.
// Events are ephemeral; they are consumed immediately by the mapper.
type ChangeEvent struct {
	Path   string
	At     time.Time
	Source ChangeSource
}
