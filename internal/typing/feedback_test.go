package typing

import "testing"

func TestSnapshotLiveAccuracyUsesTypedLength(t *testing.T) {
	// Six runes typed, five of them correct: live accuracy rewards the
	// current prefix, not completion of the target.
	fb := Snapshot("Hellox", "Hello World")
	if fb.TypedChars != 6 || fb.TargetChars != 11 || fb.Correct != 5 {
		t.Fatalf("unexpected counts: %+v", fb)
	}
	if fb.Accuracy != 83.33 {
		t.Fatalf("expected live accuracy 83.33, got %v", fb.Accuracy)
	}
	if fb.Done {
		t.Fatalf("expected unfinished attempt")
	}
}

func TestSnapshotProgressClamped(t *testing.T) {
	fb := Snapshot("Hello World Extra", "Hello World")
	if fb.Progress != 1 {
		t.Fatalf("expected clamped progress 1, got %v", fb.Progress)
	}
	if !fb.Done {
		t.Fatalf("expected done once typed length reaches target")
	}

	half := Snapshot("Hello", "Hello World")
	want := 5.0 / 11.0
	if half.Progress != want {
		t.Fatalf("expected progress %v, got %v", want, half.Progress)
	}
}

func TestSnapshotEmptyTyped(t *testing.T) {
	fb := Snapshot("", "target")
	if fb.Accuracy != 0 || fb.Progress != 0 || fb.Done {
		t.Fatalf("unexpected snapshot for empty input: %+v", fb)
	}
}

func TestLiveWPM(t *testing.T) {
	fb := Snapshot("Hello", "Hello World")
	elapsed := Duration{ms: 6000}
	// 5 correct runes = 1 word over 0.1 minutes.
	if got := LiveWPM(fb, elapsed); got != 10 {
		t.Fatalf("expected 10 WPM, got %v", got)
	}
	if got := LiveWPM(fb, Duration{}); got != 0 {
		t.Fatalf("expected 0 WPM for zero elapsed, got %v", got)
	}
}
