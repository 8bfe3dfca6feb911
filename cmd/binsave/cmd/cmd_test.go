package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/binsave/pkg/api"
	"github.com/ssargent/binsave/pkg/config"
	"github.com/ssargent/binsave/pkg/di"
)

// resetFlags restores every flag to its default between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// setupConfig bootstraps a config whose record lives in a temp dir
func setupConfig(t *testing.T) (string, string) {
	t.Helper()
	SetContainer(di.NewContainer())

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	recordPath := filepath.Join(tmpDir, "data", "record.bin")

	out, err := executeCommand(t, "init", "--config", configPath, "--record", recordPath)
	require.NoError(t, err)
	require.Contains(t, out, "Configuration created")
	return configPath, recordPath
}

func TestInitCommand(t *testing.T) {
	configPath, recordPath := setupConfig(t)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, recordPath, cfg.Storage.Path)
	assert.Equal(t, config.SampleSchema(), cfg.Schema)

	// a second init leaves the file alone
	out, err := executeCommand(t, "init", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	out, err = executeCommand(t, "init", "--config", configPath, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration created")
}

func TestLayoutCommand(t *testing.T) {
	configPath, recordPath := setupConfig(t)

	out, err := executeCommand(t, "layout", "--config", configPath)
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `counter\s+int32\s+1\s+2\s+4`, out)
	assert.Regexp(t, `total\s+22`, out)

	// opening the session creates the record file
	assert.FileExists(t, recordPath)
}

func TestSetGetCommands(t *testing.T) {
	configPath, recordPath := setupConfig(t)

	_, err := executeCommand(t, "set", "counter", "-77", "--config", configPath)
	require.NoError(t, err)

	out, err := executeCommand(t, "get", "counter", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "-77\n", out)

	data, err := os.ReadFile(recordPath)
	require.NoError(t, err)
	assert.Len(t, data, 22)
	// int32 at offset 2, little endian
	assert.Equal(t, []byte{0xB3, 0xFF, 0xFF, 0xFF}, data[2:6])
}

func TestSetCommand_Truncation(t *testing.T) {
	configPath, _ := setupConfig(t)

	out, err := executeCommand(t, "set", "name", "a name that is far too long", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "truncated name@6")

	out, err = executeCommand(t, "get", "name", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "a name that is f\n", out)
}

func TestSetCommand_Errors(t *testing.T) {
	configPath, _ := setupConfig(t)

	_, err := executeCommand(t, "set", "missing", "1", "--config", configPath)
	assert.Error(t, err)

	_, err = executeCommand(t, "set", "version", "-1", "--config", configPath)
	assert.Error(t, err)

	_, err = executeCommand(t, "get", "missing", "--config", configPath)
	assert.Error(t, err)
}

func TestExportImportCommands(t *testing.T) {
	configPath, _ := setupConfig(t)
	exportPath := filepath.Join(filepath.Dir(configPath), "export.yaml")

	_, err := executeCommand(t, "set", "name", "alpha", "--config", configPath)
	require.NoError(t, err)
	_, err = executeCommand(t, "set", "version", "3", "--config", configPath)
	require.NoError(t, err)

	out, err := executeCommand(t, "export", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "version: \"3\"")
	assert.Contains(t, out, "name: alpha")
	assert.Less(t, strings.Index(out, "version:"), strings.Index(out, "name:"))

	_, err = executeCommand(t, "export", "--config", configPath, "--out", exportPath)
	require.NoError(t, err)
	assert.FileExists(t, exportPath)

	// change the record, then restore it from the export
	_, err = executeCommand(t, "set", "name", "beta", "--config", configPath)
	require.NoError(t, err)

	out, err = executeCommand(t, "import", exportPath, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 values")

	out, err = executeCommand(t, "get", "name", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "alpha\n", out)
}

func TestImportCommand_BadValue(t *testing.T) {
	configPath, _ := setupConfig(t)
	importPath := filepath.Join(filepath.Dir(configPath), "bad.yaml")
	require.NoError(t, os.WriteFile(importPath, []byte("counter: twelve\n"), 0600))

	_, err := executeCommand(t, "import", importPath, "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "counter")
}

func TestImportCommand_ReportsTruncation(t *testing.T) {
	configPath, _ := setupConfig(t)
	importPath := filepath.Join(filepath.Dir(configPath), "long.yaml")
	require.NoError(t, os.WriteFile(importPath, []byte("name: a name that is far too long\n"), 0600))

	out, err := executeCommand(t, "import", importPath, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "truncated name@6")
	assert.Contains(t, out, "Imported 1 values")
}

func TestKeysCommand_RequiresPebble(t *testing.T) {
	configPath, _ := setupConfig(t)

	_, err := executeCommand(t, "keys", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pebble")
}

func TestKeysCommand_Pebble(t *testing.T) {
	configPath, _ := setupConfig(t)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	cfg.Storage = config.Storage{
		Backend: config.BackendPebble,
		Path:    filepath.Join(filepath.Dir(configPath), "db"),
		Key:     "settings",
	}
	require.NoError(t, config.SaveConfig(cfg, configPath))

	_, err = executeCommand(t, "set", "counter", "5", "--config", configPath)
	require.NoError(t, err)

	out, err := executeCommand(t, "keys", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, "settings\n", out)
}

func TestMissingConfig(t *testing.T) {
	SetContainer(di.NewContainer())

	_, err := executeCommand(t, "layout", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binsave init")
}

type recordingStarter struct {
	config  api.ServerConfig
	session api.RecordSession
}

func (s *recordingStarter) StartServer(ctx context.Context, session api.RecordSession, config api.ServerConfig) error {
	s.config = config
	s.session = session
	return nil
}

type recordingServerFactory struct{ starter *recordingStarter }

func (f *recordingServerFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestServeCommand(t *testing.T) {
	configPath, _ := setupConfig(t)

	starter := &recordingStarter{}
	container.SetServerFactory(&recordingServerFactory{starter: starter})

	_, err := executeCommand(t, "serve", "--config", configPath, "--port", "9100")
	require.NoError(t, err)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, 9100, starter.config.Port)
	assert.Equal(t, "127.0.0.1", starter.config.Bind)
	assert.Equal(t, cfg.Server.APIKey, starter.config.APIKey)
	require.NotNil(t, starter.session)
	assert.Equal(t, 22, starter.session.Record().Size())
}
