package models

import "time"

// ScopeType is the level a configuration value is stored at.
type ScopeType string

const (
	ScopeDefault  ScopeType = "default"
	ScopeWebsites ScopeType = "websites"
	ScopeStores   ScopeType = "stores"
)

// Valid reports whether s is a known scope type.
func (s ScopeType) Valid() bool {
	switch s {
	case ScopeDefault, ScopeWebsites, ScopeStores:
		return true
	}
	return false
}

// Scope identifies the store view a request is served for.
type Scope struct {
	WebsiteID int64 `json:"website_id"`
	StoreID   int64 `json:"store_id"`
}

// ConfigValue is one stored configuration row.
type ConfigValue struct {
	ID        int64     `json:"id"`
	Scope     ScopeType `json:"scope"`
	ScopeID   int64     `json:"scope_id"`
	Path      string    `json:"path"`
	Value     *string   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetConfigRequest is the admin payload for writing a configuration value.
type SetConfigRequest struct {
	Scope   ScopeType `json:"scope"`
	ScopeID int64     `json:"scope_id"`
	Path    string    `json:"path"`
	Value   *string   `json:"value"`
}
