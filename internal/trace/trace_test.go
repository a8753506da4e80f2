package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": LevelOff, "": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "debug": LevelDebug}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase must not emit file scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Error("detail emits up to file scope")
	}
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Error("error level emits nothing live")
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	outer, ctx := Start(ctx, ScopePass, "lint")
	inner, _ := Start(ctx, ScopeFile, "lint:./src/A.sol")
	inner.WithExtra("findings", "2").End("")
	skipped, _ := Start(ctx, ScopeNode, "rule")
	skipped.End("")
	outer.End("done")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("want 4 events, got %d:\n%s", len(lines), buf.String())
	}
	var evs []jsonEvent
	for _, l := range lines {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(l), &ev); err != nil {
			t.Fatalf("bad ndjson %q: %v", l, err)
		}
		evs = append(evs, ev)
	}
	if evs[1].ParentID != evs[0].SpanID {
		t.Errorf("file span parent = %d, want %d", evs[1].ParentID, evs[0].SpanID)
	}
	if evs[2].Extra["findings"] != "2" || evs[2].Kind != "end" {
		t.Errorf("unexpected end event %+v", evs[2])
	}
	if evs[3].Detail != "done" || evs[3].Scope != "pass" {
		t.Errorf("unexpected outer end %+v", evs[3])
	}
}

func TestRingWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeDriver, Seq: uint64(i)})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	for i, ev := range snap {
		if ev.Seq != uint64(i+2) {
			t.Errorf("snap[%d].Seq = %d, want %d", i, ev.Seq, i+2)
		}
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestRingKeepsEverythingAtErrorLevel(t *testing.T) {
	r := NewRingTracer(8, LevelError)
	Begin(r, ScopeFile, "lint:x", 0).End("")
	if got := len(r.Snapshot()); got != 2 {
		t.Fatalf("want begin+end in ring, got %d", got)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	sp := Begin(tr, ScopeDriver, "check", 0)
	if sp.ID() != 0 {
		t.Fatal("disabled span must have id 0")
	}
	sp.WithExtra("k", "v").End("")
}

func TestNewBothExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "check", 0).End("")
	if r := RingOf(tr); r == nil || len(r.Snapshot()) != 2 {
		t.Fatal("ring not reachable through the multi tracer")
	}
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "→ check") || !strings.Contains(buf.String(), "← check") {
		t.Errorf("text output:\n%s", buf.String())
	}
}

func TestFormatTextSortsExtra(t *testing.T) {
	ev := &Event{Time: time.Unix(0, 0), Kind: KindPoint, Scope: ScopePass, Name: "x", Extra: map[string]string{"b": "2", "a": "1"}}
	got := string(FormatEvent(ev, FormatText))
	if !strings.HasSuffix(got, "• x {a=1, b=2}\n") {
		t.Errorf("got %q", got)
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(r.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
	var nilHB *Heartbeat
	nilHB.Stop()
}
