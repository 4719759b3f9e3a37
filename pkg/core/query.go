// pkg/core/query.go
package core

import "time"

// QueryRecord is the audit entry of one spatial query.
type QueryRecord struct {
	ID       uint
	Time     time.Time
	Region   string
	Command  string
	Args     []string
	Result   string
	Error    string
	Duration time.Duration
}

// Failed reports whether the query returned an error.
func (q QueryRecord) Failed() bool {
	return q.Error != ""
}
