package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/garage/pkg/types"
)

// clearEnv keeps the host environment out of config resolution.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GARAGE_CONFIG_DIR", "GARAGE_DATA_FILE", "GARAGE_BACKEND",
		"GARAGE_HISTORY_SIZE", "GARAGE_MAX_SCRIPT_DEPTH", "GARAGE_LOG_LEVEL", "GARAGE_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

// execute runs the root command in-process and returns stdout, stderr and
// the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

const addFalcon = "add\nFalcon\n10\n20\n300\nPLANE\nPLASMA\n"

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "garage v"+Version+"\nmodule: "+modulePath+"\n", out)
}

func TestInitCreatesConfigAndCollection(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "cfg")

	out, _, err := execute(t, "", "init", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created empty collection at "+filepath.Join(dir, "vehicles.json"))

	cfg, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: json")
	assert.Contains(t, string(cfg), "history_size: 5")

	data, err := os.ReadFile(filepath.Join(dir, "vehicles.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Collection": []}`, string(data))

	out, _, err = execute(t, "", "init", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Collection already exists")
}

func TestConsoleSessionPersistsAcrossRuns(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, _, err := execute(t, "", "init", "--config-dir", dir)
	require.NoError(t, err)

	out, _, err := execute(t, addFalcon+"save\nexit\n", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Vehicle 0 added\n")
	assert.Contains(t, out, "Collection saved\n")

	raw, err := os.ReadFile(filepath.Join(dir, "vehicles.json"))
	require.NoError(t, err)
	var doc struct {
		Collection []map[string]any
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Collection, 1)
	assert.Equal(t, "Falcon", doc.Collection[0]["Name"])

	out, _, err = execute(t, addFalcon+"show\n", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Vehicle 1 added\n", "ids continue after the largest stored id")
	assert.Equal(t, 2, strings.Count(out, `name="Falcon"`))
}

func TestExitDoesNotSave(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, _, err := execute(t, "", "init", "--config-dir", dir)
	require.NoError(t, err)

	_, _, err = execute(t, addFalcon+"exit\nsave\n", "--config-dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "vehicles.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Collection": []}`, string(data))
}

func TestSQLiteBackend(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GARAGE_BACKEND", "sqlite")
	dbFile := filepath.Join(dir, "data", "vehicles.db")

	_, _, err := execute(t, "", "init", "--config-dir", dir, "--data-file", dbFile)
	require.NoError(t, err)
	require.FileExists(t, dbFile)

	_, _, err = execute(t, addFalcon+"save\n", "--config-dir", dir, "--data-file", dbFile)
	require.NoError(t, err)

	out, _, err := execute(t, "show\n", "--config-dir", dir, "--data-file", dbFile)
	require.NoError(t, err)
	assert.Contains(t, out, `name="Falcon"`)
}

func TestStartupFailures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, dir string)
		wantCode int
		wantErr  error
	}{
		{
			name:     "missing data file",
			setup:    func(t *testing.T, dir string) {},
			wantCode: exitSysError,
			wantErr:  types.ErrStorage,
		},
		{
			name: "malformed data file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "vehicles.json"), []byte(`{"Collection": [{"Id": "x"}]}`), 0o644))
			},
			wantCode: exitSysError,
			wantErr:  types.ErrFormat,
		},
		{
			name: "unknown backend",
			setup: func(t *testing.T, dir string) {
				t.Setenv("GARAGE_BACKEND", "mongo")
			},
			wantCode: exitUserError,
			wantErr:  types.ErrBackendUnknown,
		},
		{
			name: "invalid history size",
			setup: func(t *testing.T, dir string) {
				t.Setenv("GARAGE_HISTORY_SIZE", "0")
			},
			wantCode: exitUserError,
			wantErr:  types.ErrHistorySizeInvalid,
		},
		{
			name: "bad log level",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "vehicles.json"), []byte(`{"Collection": []}`), 0o644))
				t.Setenv("GARAGE_LOG_LEVEL", "loud")
			},
			wantCode: exitUserError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			tt.setup(t, dir)

			_, _, err := execute(t, "show\n", "--config-dir", dir)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(err))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDataFileFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "elsewhere.json")
	t.Setenv("GARAGE_DATA_FILE", dataFile)

	_, _, err := execute(t, "", "init", "--config-dir", filepath.Join(dir, "cfg"))
	require.NoError(t, err)
	assert.FileExists(t, dataFile)
}

func TestConfigCommand(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("GARAGE_HISTORY_SIZE", "9")

	out, _, err := execute(t, "", "config", "--config-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "config_dir: "+dir)
	assert.Contains(t, out, "backend: json")
	assert.Contains(t, out, "data_file: "+filepath.Join(dir, "vehicles.json"))
	assert.Contains(t, out, "history_size: 9")
	assert.Contains(t, out, "log_level: warn")
}

func TestLogsGoToStderr(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, _, err := execute(t, "", "init", "--config-dir", dir)
	require.NoError(t, err)
	t.Setenv("GARAGE_LOG_LEVEL", "debug")
	t.Setenv("GARAGE_LOG_FORMAT", "json")

	out, errOut, err := execute(t, "info\n", "--config-dir", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "collection loaded")
	assert.Contains(t, errOut, `"msg":"collection loaded"`)
	assert.Contains(t, errOut, `"command":"info"`)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("info", "json", &buf)
	require.NoError(t, err)
	logger.WithField("k", "v").Info("hello")
	assert.Contains(t, buf.String(), `"k":"v"`)

	_, err = newLogger("loud", "text", &buf)
	assert.Error(t, err)
	_, err = newLogger("info", "xml", &buf)
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(errors.New("plain")))
	assert.Equal(t, exitSysError, exitCode(systemError(errors.New("disk"))))
	assert.Equal(t, exitUserError, exitCode(userError(errors.New("flag"))))
}

func TestRootRejectsArguments(t *testing.T) {
	_, _, err := execute(t, "", "extra")
	assert.Error(t, err)
}
