package host

import (
	"encoding/json"
	"testing"
)

func TestSessionInfo(t *testing.T) {
	sess, _ := newTestSession(t)
	loadTestMedia(t, sess, "game.bin")
	sess.RunFrame()

	if _, err := sess.SaveState(); err != nil {
		t.Fatalf("save state: %v", err)
	}

	var info struct {
		Media  string `json:"media"`
		Loaded bool   `json:"loaded"`
		Region string `json:"region"`
		PAL    bool   `json:"pal"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Frames uint64 `json:"frames"`
		State  struct {
			Exists bool `json:"exists"`
			Size   int  `json:"size"`
		} `json:"state"`
	}
	if err := json.Unmarshal(sess.Info(), &info); err != nil {
		t.Fatalf("info is not valid JSON: %v", err)
	}

	if info.Media != "game" || !info.Loaded {
		t.Errorf("got media=%q loaded=%v, want game/true", info.Media, info.Loaded)
	}
	if info.Region != "us" || info.PAL {
		t.Errorf("got region=%q pal=%v, want us/false", info.Region, info.PAL)
	}
	if info.Width != 320 || info.Height != 224 {
		t.Errorf("got %dx%d, want 320x224", info.Width, info.Height)
	}
	if info.Frames != 1 {
		t.Errorf("got frames=%d, want 1", info.Frames)
	}
	if !info.State.Exists || info.State.Size == 0 {
		t.Errorf("got state exists=%v size=%d, want a saved blob", info.State.Exists, info.State.Size)
	}
}

func TestSessionInfoFresh(t *testing.T) {
	sess, _ := newTestSession(t)

	var info map[string]any
	if err := json.Unmarshal(sess.Info(), &info); err != nil {
		t.Fatalf("info is not valid JSON: %v", err)
	}
	if info["loaded"] != false || info["media"] != "" {
		t.Errorf("fresh session info: %v", info)
	}
}
