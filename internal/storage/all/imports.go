// Package all registers every storage backend with the factory. Importing it
// for side effects is how binaries opt in to the full backend set.
package all

import (
	_ "fleximart/internal/storage/postgres"
	_ "fleximart/internal/storage/sqlite"
)
