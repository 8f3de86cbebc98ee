package media

import (
	"strings"
	"testing"
)

func argString(args []string) string {
	return strings.Join(args, " ")
}

func TestBuildStitchArgs_Defaults(t *testing.T) {
	args := buildStitchArgs([]string{"q.png", "a.png", "e.png"}, "beat.mp3", "out.mp4", ReelOptions{})
	s := argString(args)

	if !strings.HasPrefix(s, "-y ") {
		t.Fatalf("expected overwrite flag first: %s", s)
	}
	if strings.Count(s, "-loop 1 -t 5 -i ") != 3 {
		t.Fatalf("expected each image looped for 5s: %s", s)
	}
	if !strings.Contains(s, "concat=n=3:v=1:a=0[v]") {
		t.Fatalf("expected 3-input concat: %s", s)
	}
	if !strings.Contains(s, "volume=0.35,atrim=0:15[a]") {
		t.Fatalf("expected audio at 0.35 trimmed to total length: %s", s)
	}
	if !strings.Contains(s, "scale=1080:1920") {
		t.Fatalf("expected vertical reel dimensions: %s", s)
	}
	if !strings.Contains(s, "-c:v libx264") || !strings.Contains(s, "-pix_fmt yuv420p") {
		t.Fatalf("expected h264/yuv420p output: %s", s)
	}
	if !strings.Contains(s, "-c:a aac -shortest") {
		t.Fatalf("expected aac audio bounded by video: %s", s)
	}
	if args[len(args)-1] != "out.mp4" {
		t.Fatalf("expected output path last: %s", s)
	}
}

func TestBuildStitchArgs_NoAudio(t *testing.T) {
	args := buildStitchArgs([]string{"q.png"}, "", "out.mp4", ReelOptions{})
	s := argString(args)

	if strings.Contains(s, "volume=") || strings.Contains(s, "-c:a") {
		t.Fatalf("expected no audio handling without an audio path: %s", s)
	}
	if !strings.Contains(s, "concat=n=1:v=1:a=0[v]") {
		t.Fatalf("expected single-input concat: %s", s)
	}
}

func TestBuildStitchArgs_Overrides(t *testing.T) {
	args := buildStitchArgs([]string{"a.png", "b.png"}, "m.mp3", "out.mp4", ReelOptions{
		SecondsPerImage: 3,
		Width:           720,
		Height:          1280,
		AudioVolume:     0.5,
	})
	s := argString(args)

	if strings.Count(s, "-loop 1 -t 3 -i ") != 2 {
		t.Fatalf("expected 3s slots: %s", s)
	}
	if !strings.Contains(s, "scale=720:1280") {
		t.Fatalf("expected overridden dimensions: %s", s)
	}
	if !strings.Contains(s, "volume=0.50,atrim=0:6[a]") {
		t.Fatalf("expected overridden volume and total: %s", s)
	}
}
