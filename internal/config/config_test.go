package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Chain.ID != SomniaShannonChainID {
		t.Errorf("Chain.ID = %d, want %d", cfg.Chain.ID, SomniaShannonChainID)
	}
	if cfg.Chain.RPC != DefaultRPCURL {
		t.Errorf("Chain.RPC = %s", cfg.Chain.RPC)
	}
	if cfg.Chain.Native.Symbol != "STT" || cfg.Chain.Native.Decimals != 18 {
		t.Errorf("native currency = %+v", cfg.Chain.Native)
	}
	if cfg.Contracts.Streaming == "" || cfg.Contracts.Marketplace == "" || cfg.Contracts.Collection == "" {
		t.Error("default contract addresses must be set")
	}
	if len(cfg.Tokens) == 0 {
		t.Error("default token table must not be empty")
	}
}

func TestRequiredChainID(t *testing.T) {
	cfg := Defaults()
	if cfg.RequiredChainID().Int64() != SomniaShannonChainID {
		t.Errorf("RequiredChainID() = %s", cfg.RequiredChainID())
	}
}

func TestExplorerTxURL(t *testing.T) {
	cfg := Defaults()
	got := cfg.ExplorerTxURL("0xabc")
	want := DefaultExplorerURL + "/tx/0xabc"
	if got != want {
		t.Errorf("ExplorerTxURL() = %s, want %s", got, want)
	}
}

func TestTokenInfos_NativeFirst(t *testing.T) {
	cfg := Defaults()
	infos := cfg.TokenInfos()

	if len(infos) != len(cfg.Tokens)+1 {
		t.Fatalf("TokenInfos() len = %d, want %d", len(infos), len(cfg.Tokens)+1)
	}
	if !infos[0].Native {
		t.Error("first entry should be the native currency")
	}
	if infos[0].Symbol != "STT" {
		t.Errorf("native symbol = %s, want STT", infos[0].Symbol)
	}
	for _, info := range infos[1:] {
		if info.Native {
			t.Errorf("token %s wrongly marked native", info.Symbol)
		}
		if info.Address == "" {
			t.Errorf("token %s has no address", info.Symbol)
		}
	}
}

func TestAddChainParams(t *testing.T) {
	cfg := Defaults()
	params := cfg.AddChainParams()

	if params.ChainID != "0xc488" {
		t.Errorf("ChainID = %s, want 0xc488", params.ChainID)
	}
	if len(params.RPCURLs) == 0 || params.RPCURLs[0] != DefaultRPCURL {
		t.Errorf("RPCURLs = %v", params.RPCURLs)
	}
	if params.NativeCurrency.Symbol != "STT" {
		t.Errorf("NativeCurrency.Symbol = %s", params.NativeCurrency.Symbol)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)

	cfg := Defaults()
	cfg.Chain.RPC = "https://example.invalid/rpc"
	cfg.Tokens = append(cfg.Tokens, TokenConfig{
		Symbol:   "TEST",
		Address:  "0x4444444444444444444444444444444444444444",
		Decimals: 8,
		Name:     "Test Token",
	})

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Chain.RPC != cfg.Chain.RPC {
		t.Errorf("RPC = %s, want %s", loaded.Chain.RPC, cfg.Chain.RPC)
	}
	if len(loaded.Tokens) != len(cfg.Tokens) {
		t.Errorf("tokens len = %d, want %d", len(loaded.Tokens), len(cfg.Tokens))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvRPC, "https://env.invalid/rpc ")
	t.Setenv(EnvChainID, "1234")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	if cfg.Chain.RPC != "https://env.invalid/rpc" {
		t.Errorf("RPC = %q", cfg.Chain.RPC)
	}
	if cfg.Chain.ID != 1234 {
		t.Errorf("Chain.ID = %d, want 1234", cfg.Chain.ID)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestApplyEnvironment_RejectsBadChainID(t *testing.T) {
	t.Setenv(EnvChainID, "not-a-number")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	if cfg.Chain.ID != SomniaShannonChainID {
		t.Errorf("Chain.ID = %d, want default to survive", cfg.Chain.ID)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"off", LogLevelOff},
		{"none", LogLevelOff},
		{"error", LogLevelError},
		{"DEBUG", LogLevelDebug},
		{" debug ", LogLevelDebug},
		{"bogus", LogLevelError},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := NewLogger(LogLevelError, path)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.Debug("must not appear")
	logger.Error("must appear")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "must appear") {
		t.Error("error message missing from log")
	}
	if strings.Contains(content, "must not appear") {
		t.Error("debug message should be filtered at error level")
	}
}

func TestLogger_OffTouchesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")

	logger, err := NewLogger(LogLevelOff, path)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Error("dropped")
	logger.Debug("dropped")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("off-level logger created the log file")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestLogger_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")

	logger, err := NewLogger(LogLevelDebug, path)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Writes after close are discarded, not a panic.
	logger.Error("after close")
}

func TestNullLogger_Discards(t *testing.T) {
	logger := NullLogger()
	logger.Debug("nothing")
	logger.Error("nothing")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := expandHome("~/logs/session.log")
	if err != nil {
		t.Fatalf("expandHome() error = %v", err)
	}
	if strings.HasPrefix(got, "~") {
		t.Errorf("expandHome() = %q, tilde not resolved", got)
	}

	plain, err := expandHome("/var/log/session.log")
	if err != nil {
		t.Fatalf("expandHome() error = %v", err)
	}
	if plain != "/var/log/session.log" {
		t.Errorf("expandHome() = %q, absolute path must pass through", plain)
	}
}
