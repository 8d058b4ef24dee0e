package store

// RowStatus is the soft-delete marker carried by rows that cascade.
type RowStatus string

const (
	// Normal is the status for a live row.
	Normal RowStatus = "NORMAL"
	// Archived is the status for a soft-deleted row.
	Archived RowStatus = "ARCHIVED"
)

func (s RowStatus) String() string {
	return string(s)
}
