package entity

import "time"

// FetchWindow bounds a crawl to an inclusive [Start, End] time range.
type FetchWindow struct {
	Start    time.Time
	End      time.Time
	PageSize int
}

// IsEmpty reports whether the window can match nothing. An inverted window
// yields an empty crawl without issuing any request.
func (w FetchWindow) IsEmpty() bool {
	return w.Start.After(w.End)
}

// Contains reports whether t falls inside the window, bounds included.
func (w FetchWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
