package domain

import "time"

// A CartKey identifies a cart line. Empty Color means no color was chosen.
type CartKey struct {
	ProductID int64
	Color     string
}

type CartLine struct {
	CartKey
	Quantity int
}

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

type Notification struct {
	ID        uint64
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

type CompareResult int

const (
	CompareAdded CompareResult = iota
	CompareRemoved
	CompareRejected
)

func (r CompareResult) String() string {
	switch r {
	case CompareAdded:
		return "added"
	case CompareRemoved:
		return "removed"
	case CompareRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
