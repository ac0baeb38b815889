package goinput

import (
	"github.com/reoring/goinput/config"
)

// Setup resolves the configured handler namespace and applies the enable
// flag. The returned registry is a copy, so disabling coercion does not
// affect other users of the namespace.
func Setup(cfg config.Config) (*Registry, error) {
	r, err := LookupNamespace(cfg.Namespace)
	if err != nil {
		return nil, err
	}
	return r.Clone().SetEnabled(cfg.IsEnabled()), nil
}
