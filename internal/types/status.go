package types

// Status is a type for the lifecycle status of a resource in the database.
// Soft deletes flip the status to deleted instead of removing the row.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}
