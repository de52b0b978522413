package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/stylegraph/pkg/api"
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/codec/codectest"
	"github.com/ssargent/stylegraph/pkg/config"
	"github.com/ssargent/stylegraph/pkg/di"
	"github.com/ssargent/stylegraph/pkg/guid"
	"github.com/ssargent/stylegraph/pkg/objects"
)

func rendererRecord() []byte {
	b := codectest.New().Versioned(objects.SimpleRendererID.String(), 3)
	b.Versioned(objects.SimpleLineSymbolLayerID.String(), 1)
	b.Versioned(objects.RgbColorID.String(), 1).Double(50).Double(10).Double(-10).U8(0).U8(0)
	return b.Double(2).U32(0).Terminator().Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// run executes the root command with a config file pointing at dataDir.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Library.DataDir = dataDir
	return runWithConfig(t, cfg, args...)
}

// runWithConfig executes the root command with cfg saved as its config file.
// Flag values persist between runs, so callers set every flag they rely on.
func runWithConfig(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, cfgPath))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReadRecord(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	rawPath := writeFile(t, "rec.bin", raw)
	hexPath := writeFile(t, "rec.hex", []byte("01 02 03\n04 05\n"))

	tests := []struct {
		name    string
		path    string
		stdin   string
		hex     bool
		offset  int
		length  int
		want    []byte
		wantErr bool
	}{
		{name: "whole file", path: rawPath, want: raw},
		{name: "range", path: rawPath, offset: 1, length: 3, want: []byte{0x02, 0x03, 0x04}},
		{name: "offset to end", path: rawPath, offset: 3, want: []byte{0x04, 0x05}},
		{name: "hex with whitespace", path: hexPath, hex: true, want: raw},
		{name: "stdin", path: "-", stdin: "0a0b", hex: true, want: []byte{0x0a, 0x0b}},
		{name: "offset past end", path: rawPath, offset: 6, wantErr: true},
		{name: "length past end", path: rawPath, offset: 2, length: 4, wantErr: true},
		{name: "negative offset", path: rawPath, offset: -1, wantErr: true},
		{name: "empty range", path: rawPath, offset: 5, wantErr: true},
		{name: "bad hex", path: rawPath, hex: true, wantErr: true},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readRecord(tt.path, strings.NewReader(tt.stdin), tt.hex, tt.offset, tt.length)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintTree(t *testing.T) {
	obj, err := codec.Decode(rendererRecord(), objects.MustRegistry())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printTree(&out, obj, 0))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "SimpleRenderer ("))
	assert.True(t, strings.HasPrefix(lines[1], "  SimpleLineSymbolLayer ("))
	assert.True(t, strings.HasPrefix(lines[2], "    RgbColor ("))

	out.Reset()
	require.NoError(t, printTree(&out, nil, 0))
	assert.Equal(t, "(null)\n", out.String())
}

func TestPrintSnapshot_NullRoot(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printSnapshot(&out, nil))
	assert.JSONEq(t, `{"class":"","snapshot":null}`, out.String())
}

func TestPrintClasses(t *testing.T) {
	reg := objects.MustRegistry()

	t.Run("table", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printClasses(&out, reg.Classes(), "table"))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, lines, 1+reg.Len()+reg.UnsupportedLen())
		assert.Contains(t, out.String(), objects.SimpleRendererID.String())
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printClasses(&out, reg.Classes(), "json"))
		var got []codec.ClassInfo
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, reg.Classes(), got)
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, printClasses(&bytes.Buffer{}, nil, "xml"))
	})
}

func TestDescribeGUID(t *testing.T) {
	reg := objects.MustRegistry()

	tests := []struct {
		name  string
		id    guid.GUID
		class string
	}{
		{"supported", objects.SimpleRendererID, "class:     SimpleRenderer\n"},
		{"catalogued", objects.Catalog[0].ID, "class:     " + objects.Catalog[0].Name + " (unsupported)\n"},
		{"unknown", guid.MustParse("0badc0de-0000-4000-8000-000000000001"), "class:     unknown\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, describeGUID(&out, reg, tt.id))
			assert.Contains(t, out.String(), "canonical: "+tt.id.String())
			assert.Contains(t, out.String(), "wire:      "+tt.id.WireHex())
			assert.Contains(t, out.String(), tt.class)
		})
	}
}

func TestInitializeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stylegraph.toml")

	cfg, got, err := initializeConfig(path, "./records", false)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "./records", cfg.Library.DataDir)
	assert.Len(t, cfg.Server.APIKey, 64)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.APIKey, loaded.Server.APIKey)

	_, _, err = initializeConfig(path, "", false)
	assert.Error(t, err)

	again, _, err := initializeConfig(path, "", true)
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Server.APIKey, again.Server.APIKey)
}

func TestDecodeCommand(t *testing.T) {
	SetContainer(di.NewContainer())
	dataDir := t.TempDir()

	t.Run("snapshot", func(t *testing.T) {
		path := writeFile(t, "renderer.bin", rendererRecord())
		out, err := run(t, dataDir, "decode", path)
		require.NoError(t, err)

		var got struct {
			Class    string                 `json:"class"`
			Snapshot map[string]interface{} `json:"snapshot"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "SimpleRenderer", got.Class)
		assert.Contains(t, got.Snapshot, "symbol")
	})

	t.Run("hex tree", func(t *testing.T) {
		path := writeFile(t, "renderer.hex", []byte(hex.EncodeToString(rendererRecord())))
		out, err := run(t, dataDir, "decode", "--hex", "--tree", path)
		require.NoError(t, err)
		assert.Contains(t, out, "  SimpleLineSymbolLayer")
	})

	t.Run("malformed", func(t *testing.T) {
		buf := rendererRecord()
		path := writeFile(t, "short.bin", buf[:len(buf)-1])
		_, err := run(t, dataDir, "decode", "--hex=false", "--tree=false", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrMalformed)
		assert.True(t, strings.HasPrefix(err.Error(), "malformed: "))
	})

	t.Run("null root", func(t *testing.T) {
		path := writeFile(t, "null.bin", make([]byte, 16))

		out, err := run(t, dataDir, "decode", "--hex=false", "--tree=false", path)
		require.NoError(t, err)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "", got["class"])
		assert.Contains(t, got, "snapshot")
		assert.Nil(t, got["snapshot"])

		out, err = run(t, dataDir, "decode", "--hex=false", "--tree", path)
		require.NoError(t, err)
		assert.Equal(t, "(null)\n", out)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		path := writeFile(t, "padded.bin", append(rendererRecord(), 0x00, 0x00))

		out, err := run(t, dataDir, "decode", "--hex=false", "--tree=false", "--strict=false", path)
		require.NoError(t, err)
		assert.Contains(t, out, `"class": "SimpleRenderer"`)

		_, err = run(t, dataDir, "decode", "--hex=false", "--tree=false", "--strict", path)
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrTrailingBytes)
		assert.True(t, strings.HasPrefix(err.Error(), "malformed: "))
	})
}

func TestTreeHonorsMaxDepthFlag(t *testing.T) {
	SetContainer(di.NewContainer())

	cfg := config.DefaultConfig()
	cfg.Library.DataDir = t.TempDir()
	cfg.Decode.MaxDepth = 1
	path := writeFile(t, "renderer.bin", rendererRecord())

	_, err := runWithConfig(t, cfg, "decode", "--hex=false", "--strict=false", "--tree", "--max-depth", "1", path)
	assert.ErrorIs(t, err, codec.ErrDepthExceeded)

	out, err := runWithConfig(t, cfg, "decode", "--hex=false", "--strict=false", "--tree", "--max-depth", "8", path)
	require.NoError(t, err)
	assert.Contains(t, out, "    RgbColor")

	out, err = runWithConfig(t, cfg, "library", "put", "--name", "roads", path)
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	out, err = runWithConfig(t, cfg, "library", "get", "--raw=false", "--tree", "--max-depth", "8", id)
	require.NoError(t, err)
	assert.Contains(t, out, "    RgbColor")
}

func TestLibraryCommands(t *testing.T) {
	SetContainer(di.NewContainer())
	dataDir := t.TempDir()
	path := writeFile(t, "renderer.bin", rendererRecord())

	out, err := run(t, dataDir, "library", "put", "--name", "roads", path)
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, dataDir, "library", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "roads")

	out, err = run(t, dataDir, "library", "get", "--tree=false", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"class": "SimpleRenderer"`)

	out, err = run(t, dataDir, "library", "decode")
	require.NoError(t, err)
	assert.Contains(t, out, "1 records: 1 ok, 0 unsupported, 0 unknown, 0 malformed, 0 error")

	nullPath := writeFile(t, "null.bin", make([]byte, 16))
	out, err = run(t, dataDir, "library", "put", "--name", "empty", nullPath)
	require.NoError(t, err)
	nullID := strings.TrimSpace(out)

	out, err = run(t, dataDir, "library", "get", "--tree=false", nullID)
	require.NoError(t, err)
	assert.Contains(t, out, `"class": ""`)
	assert.Contains(t, out, `"snapshot": null`)

	out, err = run(t, dataDir, "library", "get", "--tree", nullID)
	require.NoError(t, err)
	assert.Equal(t, "(null)\n", out)

	out, err = run(t, dataDir, "library", "get", "--tree=false", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"class": "SimpleRenderer"`)

	out, err = run(t, dataDir, "library", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)

	_, err = run(t, dataDir, "library", "get", id)
	assert.Error(t, err)
}

type recordingStarter struct {
	config api.ServerConfig
	lib    api.RecordLibrary
}

func (s *recordingStarter) StartServer(_ context.Context, _ *codec.Registry, lib api.RecordLibrary, config api.ServerConfig, _ zerolog.Logger) error {
	s.config = config
	s.lib = lib
	return nil
}

type recordingServerFactory struct {
	starter *recordingStarter
}

func (f *recordingServerFactory) CreateServerStarter() api.ServerStarter {
	return f.starter
}

func TestServeCommand(t *testing.T) {
	starter := &recordingStarter{}
	c := di.NewContainer()
	c.SetServerFactory(&recordingServerFactory{starter: starter})
	SetContainer(c)

	_, err := run(t, t.TempDir(), "serve", "--port", "9311", "--api-key", "secret")
	require.NoError(t, err)

	assert.Equal(t, 9311, starter.config.Port)
	assert.Equal(t, "127.0.0.1", starter.config.Bind)
	assert.Equal(t, "secret", starter.config.APIKey)
	assert.Equal(t, codec.DefaultMaxDepth, starter.config.MaxDepth)
	assert.NotNil(t, starter.lib)
}
