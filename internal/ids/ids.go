package ids

import "github.com/segmentio/ksuid"

// New returns a sortable unique identifier for database records.
func New() string {
	return ksuid.New().String()
}
