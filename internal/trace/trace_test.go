package trace

import (
	"testing"

	"spritelab.dev/internal/protocol"
	"spritelab.dev/internal/sim/stage"
)

func TestFrameLogger_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	l := NewFrameLogger(dir)

	want := []stage.FrameRecord{
		{Frame: 1, Playing: false, Sprites: []protocol.SpriteView{
			{ID: "s-001", Kind: protocol.KindCat, X: 120, Y: 80, Dir: 90, Scale: 1},
		}},
		{Frame: 2, Playing: true,
			Commands: []protocol.CommandMsg{{Type: protocol.TypeCommand, ProtocolVersion: protocol.Version, Op: protocol.OpPlay}},
			Sprites: []protocol.SpriteView{
				{ID: "s-001", Kind: protocol.KindCat, X: 121.5, Y: 80, Dir: 90, Scale: 1, Saying: "Hello!"},
			}},
	}
	for _, rec := range want {
		if err := l.WriteFrame(rec); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := ListFrameFiles(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected one frame file, got %d", len(files))
	}

	var got []stage.FrameRecord
	if err := ReadFrames(files[0], func(rec stage.FrameRecord) error {
		got = append(got, rec)
		return nil
	}); err != nil {
		t.Fatalf("read: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Frame != want[i].Frame || got[i].Playing != want[i].Playing {
			t.Fatalf("record %d header mismatch: %+v vs %+v", i, got[i], want[i])
		}
		if len(got[i].Sprites) != len(want[i].Sprites) || got[i].Sprites[0] != want[i].Sprites[0] {
			t.Fatalf("record %d sprites mismatch: %+v vs %+v", i, got[i].Sprites, want[i].Sprites)
		}
	}
	if len(got[1].Commands) != 1 || got[1].Commands[0].Op != protocol.OpPlay {
		t.Fatalf("commands not preserved: %+v", got[1].Commands)
	}
}

func TestListFrameFiles_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	l := NewFrameLogger(dir)
	if err := l.WriteFrame(stage.FrameRecord{Frame: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := ListFrameFiles(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files", len(files))
	}
}
