package domain

// Configuration keys, in dot notation matching the TOML tables.
const (
	ConfigKeySourceDir = "source.dir"

	ConfigKeyTargetURL       = "target.url"
	ConfigKeyTargetUsername  = "target.username"
	ConfigKeyTargetPassword  = "target.password"
	ConfigKeyTargetToken     = "target.token"
	ConfigKeyTargetRateLimit = "target.rate_limit"
	ConfigKeyTargetTimeout   = "target.timeout"

	ConfigKeyRootPath       = "migration.root_path"
	ConfigKeyImportExternal = "migration.import_external"
	ConfigKeyImportRedirect = "migration.import_redirect"
	ConfigKeyLimit          = "migration.limit"
	ConfigKeyMappingFile    = "migration.mapping_file"
	ConfigKeySkipCompleted  = "migration.skip_completed"

	ConfigKeyLedgerDataDir = "ledger.data_dir"
	ConfigKeyMetricsAddr   = "metrics.addr"
)

// ConfigKeys lists every key in display order.
var ConfigKeys = []string{
	ConfigKeySourceDir,
	ConfigKeyTargetURL,
	ConfigKeyTargetUsername,
	ConfigKeyTargetPassword,
	ConfigKeyTargetToken,
	ConfigKeyTargetRateLimit,
	ConfigKeyTargetTimeout,
	ConfigKeyRootPath,
	ConfigKeyImportExternal,
	ConfigKeyImportRedirect,
	ConfigKeyLimit,
	ConfigKeyMappingFile,
	ConfigKeySkipCompleted,
	ConfigKeyLedgerDataDir,
	ConfigKeyMetricsAddr,
}

// IsSecretConfigKey reports whether a key holds a credential that must be masked on display.
func IsSecretConfigKey(key string) bool {
	return key == ConfigKeyTargetPassword || key == ConfigKeyTargetToken
}
