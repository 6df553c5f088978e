package model

import (
	"fmt"
	"strings"
)

// Definition is a declarative model. Zero values fall back to the
// conventional defaults: key "id", timestamps "created_at"/"updated_at" and a
// table derived from Name.
type Definition struct {
	Name       string `yaml:"name" json:"name"`
	TableName  string `yaml:"table,omitempty" json:"table,omitempty"`
	Connection string `yaml:"connection,omitempty" json:"connection,omitempty"`
	Key        string `yaml:"key,omitempty" json:"key,omitempty"`
	CreatedAt  string `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt  string `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
	// Timestamps disables both timestamp columns when explicitly false.
	Timestamps *bool  `yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
	Prefix     string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
}

var _ Model = Definition{}
var _ TablePrefixer = Definition{}

// KeyName implements Model.
func (d Definition) KeyName() string {
	if key := strings.TrimSpace(d.Key); key != "" {
		return key
	}
	return DefaultKeyName
}

// CreatedAtColumn implements Model.
func (d Definition) CreatedAtColumn() string {
	if !d.usesTimestamps() {
		return ""
	}
	if column := strings.TrimSpace(d.CreatedAt); column != "" {
		return column
	}
	return DefaultCreatedAtColumn
}

// UpdatedAtColumn implements Model.
func (d Definition) UpdatedAtColumn() string {
	if !d.usesTimestamps() {
		return ""
	}
	if column := strings.TrimSpace(d.UpdatedAt); column != "" {
		return column
	}
	return DefaultUpdatedAtColumn
}

// ConnectionName implements Model. An empty name selects the default
// connection.
func (d Definition) ConnectionName() string {
	return strings.TrimSpace(d.Connection)
}

// Table implements Model.
func (d Definition) Table() string {
	if table := strings.TrimSpace(d.TableName); table != "" {
		return table
	}
	return TableFor(d.Name)
}

// TablePrefix implements TablePrefixer.
func (d Definition) TablePrefix() string {
	return d.Prefix
}

// Validate reports definitions that cannot resolve a table.
func (d Definition) Validate() error {
	if d.Table() == "" {
		return fmt.Errorf("%w: definition %q has neither name nor table", ErrInvalidModel, d.Name)
	}
	return nil
}

func (d Definition) usesTimestamps() bool {
	return d.Timestamps == nil || *d.Timestamps
}
