package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liquidity2/terminal/internal/catalog"
)

// TestOpenCatalog_Builtin verifies the built-in catalog loads when no path
// is configured. This is the default state of every subcommand.
func TestOpenCatalog_Builtin(t *testing.T) {
	cfg.Catalog.Path = ""
	t.Cleanup(func() { cfg.Catalog.Path = "" })

	svc, snapshot, err := openCatalog(nil)
	require.NoError(t, err)
	require.NotNil(t, svc)
	require.Equal(t, catalog.SourceBuiltin, snapshot.Source)
	require.Greater(t, snapshot.Plan.NumTiers(), 1)
}

func TestOpenCatalog_FileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engines.yaml")
	content := `
engines:
  - id: only
    pillar: macro
    priority: 5
    refresh_interval_ms: 1000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg.Catalog.Path = path
	t.Cleanup(func() { cfg.Catalog.Path = "" })

	_, snapshot, err := openCatalog(nil)
	require.NoError(t, err)
	require.Equal(t, path, snapshot.Source)
	require.Equal(t, 1, snapshot.Registry.Len())
}

func TestOpenCatalog_InvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engines.yaml")
	content := `
engines:
  - id: orphan
    pillar: macro
    depends_on: [missing]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg.Catalog.Path = path
	t.Cleanup(func() { cfg.Catalog.Path = "" })

	_, _, err := openCatalog(nil)
	require.Error(t, err)
	require.ErrorIs(t, err, catalog.ErrCatalogRejected)
}

// TestValidationReport_JSONShape pins the catalog:validate output contract
// that scripts depend on.
func TestValidationReport_JSONShape(t *testing.T) {
	report := validationReport{
		Valid:       false,
		Source:      "x.yaml",
		Diagnostics: []string{"engine \"a\": unknown dependency \"b\""},
	}

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "valid")
	require.Contains(t, decoded, "source")
	require.Contains(t, decoded, "diagnostics")
}
