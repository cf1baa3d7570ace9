package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"featurize/pkg/encoder"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "SalePrice", c.Target)
	require.Equal(t, 5, c.NumSplits)
	require.Equal(t, 5.0, c.Alpha)
	require.Equal(t, int64(42), c.RndSeed)
	require.Len(t, c.Features, 18)
	require.Contains(t, c.Features, "Neighborhood")
	require.Contains(t, c.OneHotFeatures, "CentralAir")
}

func TestLoad(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(`
features: [Neighborhood, MSZoning]
n_splits: 3
alpha: 10
drop_original: true
`), 0600))

	c, err := Load(fileName)
	require.NoError(t, err)
	require.Equal(t, []string{"Neighborhood", "MSZoning"}, c.Features)
	require.Equal(t, 3, c.NumSplits)
	require.Equal(t, 10.0, c.Alpha)
	require.True(t, c.DropOriginal)
	require.Equal(t, "SalePrice", c.Target)
	require.Equal(t, Default().OneHotFeatures, c.OneHotFeatures)

	e := c.TargetEncoder()
	require.Equal(t, 3, e.NumSplits)
	require.Equal(t, 10.0, e.Alpha)
	require.Equal(t, int64(42), e.RndSeed)
	require.True(t, e.DropOriginal)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	fileName := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte("n_splits: [1, 2"), 0600))
	_, err = Load(fileName)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "no target", modify: func(c *Config) { c.Target = "" }},
		{name: "one split", modify: func(c *Config) { c.NumSplits = 1 }},
		{name: "negative alpha", modify: func(c *Config) { c.Alpha = -0.5 }},
		{name: "target as feature", modify: func(c *Config) { c.Features = append(c.Features, c.Target) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			require.True(t, errors.Is(c.Validate(), encoder.ErrConfiguration))
		})
	}
}
