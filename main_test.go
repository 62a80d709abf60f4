package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"mdhost/core"
	"mdhost/core/coretest"
	"mdhost/host"
)

func tcheckf(tb testing.TB, err error, format string, args ...any) {
	if err == nil {
		return
	}

	tb.Helper()
	tb.Fatalf("fatal error:\n\n%s: %s\n", fmt.Sprintf(format, args...), err)
}

func writeTempRom(tb testing.TB, name string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	err := os.WriteFile(path, make([]byte, 512), 0644)
	tcheckf(tb, err, "failed to write %s", name)
	return path
}

func TestParseArgs(t *testing.T) {
	rom := writeTempRom(t, "game.bin")

	cli := parseArgs([]string{"version"})
	if cli.mode != versionMode {
		t.Errorf("got mode %d, want versionMode", cli.mode)
	}

	cli = parseArgs([]string{"rom-infos", rom})
	if cli.mode != romInfosMode {
		t.Errorf("got mode %d, want romInfosMode", cli.mode)
	}
	if cli.RomInfos.RomPath != rom {
		t.Errorf("got rom path %q, want %q", cli.RomInfos.RomPath, rom)
	}

	// run is the default command.
	cli = parseArgs([]string{rom, "--frames", "42"})
	if cli.mode != runMode {
		t.Errorf("got mode %d, want runMode", cli.mode)
	}
	if cli.Run.RomPath != rom || cli.Run.Frames != 42 {
		t.Errorf("got rom=%q frames=%d, want %q/42", cli.Run.RomPath, cli.Run.Frames, rom)
	}
}

func TestDoRunWithoutCore(t *testing.T) {
	host.RegisterCore(nil)
	defer host.RegisterCore(func() core.Core { return coretest.New() })

	err := doRun(Run{RomPath: writeTempRom(t, "game.bin"), Frames: 1})
	if err == nil {
		t.Fatal("expected an error without a registered core")
	}
}

func TestDoRun(t *testing.T) {
	host.RegisterCore(func() core.Core { return coretest.New() })

	dir := t.TempDir()
	args := Run{
		RomPath:   writeTempRom(t, "game.bin"),
		Frames:    5,
		Wav:       filepath.Join(dir, "out.wav"),
		SaveState: filepath.Join(dir, "state.bin"),
	}
	tcheckf(t, doRun(args), "run failed")

	wav, err := os.Stat(args.Wav)
	tcheckf(t, err, "wav file missing")
	if wav.Size() == 0 {
		t.Error("wav file is empty")
	}

	blob, err := os.ReadFile(args.SaveState)
	tcheckf(t, err, "save state missing")
	if len(blob) == 0 {
		t.Error("save state is empty")
	}
}

func TestDoRunInfo(t *testing.T) {
	host.RegisterCore(func() core.Core { return coretest.New() })

	// --info prints the session JSON on stdout.
	old := os.Stdout
	r, w, err := os.Pipe()
	tcheckf(t, err, "pipe")
	os.Stdout = w

	runErr := doRun(Run{RomPath: writeTempRom(t, "game.bin"), Frames: 3, Info: true})

	w.Close()
	os.Stdout = old
	tcheckf(t, runErr, "run failed")

	var info struct {
		Loaded bool   `json:"loaded"`
		Frames uint64 `json:"frames"`
	}
	tcheckf(t, json.NewDecoder(r).Decode(&info), "bad info output")

	if !info.Loaded || info.Frames != 3 {
		t.Errorf("got loaded=%v frames=%d, want true/3", info.Loaded, info.Frames)
	}
}
