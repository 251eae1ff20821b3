// Package env loads KEY=VALUE files into the process environment.
package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultPath is the dotenv file read at startup.
const DefaultPath = ".env"

// Load reads the given file (e.g. ".env") and sets environment variables that are
// not already set, so the real environment wins. The file may be missing; that is
// not an error.
func Load(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env: %s: %w", path, err)
	}
	return nil
}
