package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mdhost/host"
	log "mdhost/logger"
	"mdhost/mdrom"
)

// doRun drives the registered core headless for a fixed number of
// frames, optionally recording audio and dumping a save state.
func doRun(args Run) error {
	factory := host.RegisteredCore()
	if factory == nil {
		return errors.New("no emulation core is linked into this build")
	}

	data, err := os.ReadFile(args.RomPath)
	if err != nil {
		return err
	}

	cfg := host.LoadConfigOrDefault(args.Config)
	sess := host.NewSession(factory(), cfg)
	if err := sess.Init(); err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.LoadMedia(filepath.Base(args.RomPath), data); err != nil {
		return err
	}

	if args.Wav != "" {
		rec, err := host.NewRecorder(args.Wav, cfg.Sound.Rate)
		if err != nil {
			return err
		}
		defer rec.Close()
		sess.Sound.SetConsumer(func(pkt host.Packet) {
			if err := rec.Write(pkt); err != nil {
				log.ModSound.Errorf("wav write: %v", err)
			}
		})
	}

	for range args.Frames {
		sess.RunFrame()
	}

	if args.SaveState != "" {
		blob, err := sess.SaveState()
		if err != nil {
			return err
		}
		if err := os.WriteFile(args.SaveState, blob, 0644); err != nil {
			return err
		}
		log.ModState.Infof("state written to %s", args.SaveState)
	}

	if args.Info {
		fmt.Printf("%s\n", sess.Info())
	}
	return nil
}

func romInfosMain(args RomInfos) {
	rom, err := mdrom.Open(args.RomPath)
	checkf(err, "failed to read ROM")
	rom.PrintInfos(os.Stdout)
}
