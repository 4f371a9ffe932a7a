package driven

// PathMapper maps legacy identifiers to target repository paths.
type PathMapper interface {
	// MapObjectPath returns the target path of the object with the given pid.
	MapObjectPath(pid string) string

	// MapDatastreamPath returns the target path of a datastream of an object.
	MapDatastreamPath(pid, datastreamID string) string
}
