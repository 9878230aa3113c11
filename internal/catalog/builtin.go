package catalog

import (
	_ "embed"

	"github.com/liquidity2/terminal/internal/domain/engine"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// SourceBuiltin is the snapshot source label for the embedded catalog.
const SourceBuiltin = "builtin"

// Builtin parses the catalog embedded in the binary. The embedded catalog is
// covered by tests, so an error here means the build itself is broken.
func Builtin() ([]*engine.Descriptor, error) {
	return Parse(builtinCatalog)
}
