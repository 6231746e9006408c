package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (TOML file) and type conversion.
type ConfigStore interface {
	// Get retrieves a raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, empty when absent or mistyped.
	GetString(key string) string

	// GetInt retrieves an integer value, 0 when absent or mistyped.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key and persists the change.
	Delete(key string) error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
