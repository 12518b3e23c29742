// Package config holds the small helpers shared by the glyph3d commands:
// environment parsing and fatal exits.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills target from environment variables using its env struct
// tags. Values already set on target are kept when no variable is present
// and no envDefault is declared.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
