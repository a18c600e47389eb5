// Package plugin provides the lifecycle framework for site-build plugins.
// The site build invokes each registered plugin's hooks around generation.
package plugin

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitegrouper/internal/config"
	"git.home.luguber.info/inful/sitegrouper/internal/site"
)

// Plugin is the minimal contract every plugin implements.
type Plugin interface {
	// Metadata returns the plugin's identity.
	Metadata() Metadata
}

// SiteLifecycle is implemented by plugins that hook into site generation.
type SiteLifecycle interface {
	Plugin

	// BeginSite is invoked exactly once, before any rendering.
	BeginSite(ctx context.Context, pctx *Context) error
}

// Context provides plugins access to configuration and the loaded site.
type Context struct {
	Config  *config.Config
	Site    *site.Site
	BuildID string
}

// Metadata describes a plugin's identity.
type Metadata struct {
	// Name is the unique plugin identifier (e.g. "grouper").
	Name string

	// Version is the semantic version (e.g. "v1.0.0").
	Version string

	// Description provides a human-readable summary of the plugin's purpose.
	Description string
}

// String returns a human-readable representation of the plugin metadata.
func (m Metadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// Validate checks if the plugin metadata is valid.
func (m Metadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	return nil
}
