package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// FieldRequest carries a field value in its export text form
type FieldRequest struct {
	Value string `json:"value"`
}

// FieldResponse describes a single field's current value
type FieldResponse struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Value       string   `json:"value"`
	Truncations []string `json:"truncations,omitempty"`
}

// ImportResponse reports a completed import
type ImportResponse struct {
	Message     string   `json:"message"`
	Truncations []string `json:"truncations,omitempty"`
}

// LayoutEntry describes where a field sits in the record buffer
type LayoutEntry struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Count  int    `json:"count"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// PersistResponse reports a completed persist
type PersistResponse struct {
	Session string `json:"session"`
	Target  string `json:"target"`
	Bytes   int    `json:"bytes"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}
