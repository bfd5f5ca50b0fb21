package docstore

// ConnectionConfig contains the configuration for a backend connection.
// This is a unified configuration that works across all backend types.
type ConnectionConfig struct {
	// Core identifiers
	DatabaseID string `json:"databaseId,omitempty"`

	// Connection metadata
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// Backend type, e.g. "riak"
	ConnectionType string `json:"connectionType"`

	// Connection details
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// Backend-specific options (use sparingly)
	Options map[string]interface{} `json:"options,omitempty"`
}

// Option returns a string-valued backend option, or def when unset.
func (c ConnectionConfig) Option(key, def string) string {
	if c.Options == nil {
		return def
	}
	if v, ok := c.Options[key].(string); ok && v != "" {
		return v
	}
	return def
}
