package domain

// MigrationSettings controls how objects are migrated.
type MigrationSettings struct {
	// ImportExternal fetches E datastream content and stores it in the target.
	// When false a redirect resource pointing at the URL is created instead.
	ImportExternal bool

	// ImportRedirect fetches R datastream content and stores it in the target.
	// When false a redirect resource pointing at the URL is created instead.
	ImportRedirect bool

	// Limit caps the number of objects processed. Negative means unlimited.
	Limit int

	// SkipCompleted skips objects a previous run recorded as completed.
	SkipCompleted bool
}

// DefaultMigrationSettings returns settings with no limit and redirects kept.
func DefaultMigrationSettings() MigrationSettings {
	return MigrationSettings{
		Limit: -1,
	}
}
