package configpaths_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Alia5/overdrive/internal/configpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "overdrive"), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/u")
	dir, err = configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u", ".config", "overdrive"), dir)

	f, err := configpaths.DefaultFile("api.key")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "api.key"), f)
}

func TestConfigCandidatePaths(t *testing.T) {
	tests := []struct {
		user  string
		match func(j, y, tm []string) string
	}{
		{"my.yml", func(j, y, tm []string) string { return y[0] }},
		{"my.toml", func(j, y, tm []string) string { return tm[0] }},
		{"my.json", func(j, y, tm []string) string { return j[0] }},
		{"my.conf", func(j, y, tm []string) string { return j[0] }},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tt.user)
			assert.Equal(t, tt.user, tt.match(j, y, tm))
		})
	}

	j, y, tm := configpaths.ConfigCandidatePaths("")
	assert.NotEmpty(t, j)
	assert.Len(t, y, 2*len(j))
	assert.Len(t, tm, len(j))
}

func TestExt(t *testing.T) {
	assert.Equal(t, "yaml", configpaths.Ext("yml"))
	assert.Equal(t, "toml", configpaths.Ext("toml"))
	assert.Equal(t, "json", configpaths.Ext("json"))
}
