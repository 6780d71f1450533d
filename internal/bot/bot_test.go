package bot

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"ForecastLens/internal/chart"
	"ForecastLens/internal/model"
	"ForecastLens/internal/session"
	"ForecastLens/internal/source"
)

var layout = model.Layout{Width: 1000, Height: 500, Margin: model.DefaultLayout().Margin}

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	mgr := session.NewManager(source.NewCollector(source.NewMockSource()), layout, chart.DefaultOptions())
	return New(mgr, layout)
}

func viewport(t *testing.T, b *Bot) model.Viewport {
	t.Helper()
	v, err := b.Sessions.Get(b.viewID)
	if err != nil {
		t.Fatalf("no open view: %v", err)
	}
	return v.Frame().Viewport
}

func TestHandleCommand_Chart(t *testing.T) {
	b := newTestBot(t)
	r := b.HandleCommand(context.Background(), "/chart spy")
	if !strings.Contains(r.Text, "<b>SPY</b>") {
		t.Errorf("unexpected caption %q", r.Text)
	}
	if len(r.Photo) < 8 || string(r.Photo[1:4]) != "PNG" {
		t.Error("expected a PNG photo")
	}
	if b.Sessions.Len() != 1 {
		t.Errorf("expected 1 open view, got %d", b.Sessions.Len())
	}

	// opening another chart replaces the first
	b.HandleCommand(context.Background(), "/chart@ForecastLensBot QQQ")
	if b.Sessions.Len() != 1 {
		t.Errorf("expected previous view to be closed, got %d open", b.Sessions.Len())
	}
}

func TestHandleCommand_Gestures(t *testing.T) {
	b := newTestBot(t)
	ctx := context.Background()
	b.HandleCommand(ctx, "/chart SPY")

	b.HandleCommand(ctx, "/zoomin")
	vp := viewport(t, b)
	if math.Abs(vp.Width()-159/1.1) > 1e-9 {
		t.Fatalf("zoomin: expected width %v, got %v", 159/1.1, vp.Width())
	}
	if math.Abs((vp.Start+vp.End)/2-79.5) > 1e-9 {
		t.Errorf("zoomin should keep the centre, got %+v", vp)
	}

	b.HandleCommand(ctx, "/right")
	right := viewport(t, b)
	if right.Start <= vp.Start {
		t.Errorf("/right should move forward in time: %+v -> %+v", vp, right)
	}

	b.HandleCommand(ctx, "/left")
	b.HandleCommand(ctx, "/left")
	left := viewport(t, b)
	if left.Start >= right.Start {
		t.Errorf("/left should move back in time: %+v -> %+v", right, left)
	}

	b.HandleCommand(ctx, "/zoomout")
	b.HandleCommand(ctx, "/reset")
	if vp := viewport(t, b); vp != (model.Viewport{Start: 0, End: 159}) {
		t.Errorf("reset: got %+v", vp)
	}
}

func TestHandleCommand_Close(t *testing.T) {
	b := newTestBot(t)
	ctx := context.Background()
	b.HandleCommand(ctx, "/chart SPY")

	if r := b.HandleCommand(ctx, "/close"); r.Text != "Chart closed." {
		t.Errorf("unexpected reply %q", r.Text)
	}
	if b.Sessions.Len() != 0 {
		t.Error("view should be closed")
	}
	if r := b.HandleCommand(ctx, "/zoomin"); !strings.Contains(r.Text, "No chart open") {
		t.Errorf("unexpected reply %q", r.Text)
	}
}

func TestHandleCommand_Expired(t *testing.T) {
	b := newTestBot(t)
	ctx := context.Background()
	b.HandleCommand(ctx, "/chart SPY")
	time.Sleep(5 * time.Millisecond)
	b.Sessions.Sweep(time.Millisecond)

	if r := b.HandleCommand(ctx, "/left"); !strings.Contains(r.Text, "expired") {
		t.Errorf("unexpected reply %q", r.Text)
	}
}

func TestHandleCommand_Errors(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"/chart", "Usage"},
		{"/chart ../etc", "Invalid symbol"},
		{"/help", "Commands"},
		{"hello", "Commands"},
		{"", "Commands"},
	}
	b := newTestBot(t)
	for _, tt := range tests {
		if r := b.HandleCommand(context.Background(), tt.command); !strings.Contains(r.Text, tt.want) {
			t.Errorf("%q: expected reply containing %q, got %q", tt.command, tt.want, r.Text)
		}
	}
}

func TestHandleCommand_NotFound(t *testing.T) {
	mgr := session.NewManager(source.NewCollector(source.NewFileSource(t.TempDir())), layout, chart.DefaultOptions())
	b := New(mgr, layout)
	if r := b.HandleCommand(context.Background(), "/chart msft"); r.Text != "No forecast for MSFT." {
		t.Errorf("unexpected reply %q", r.Text)
	}
}

func TestHandleCommand_List(t *testing.T) {
	ctx := context.Background()
	fs := source.NewFileSource(t.TempDir())
	mgr := session.NewManager(source.NewCollector(fs), layout, chart.DefaultOptions())
	b := New(mgr, layout)

	if r := b.HandleCommand(ctx, "/list"); r.Text != "No forecasts stored yet." {
		t.Errorf("unexpected reply %q", r.Text)
	}
	for _, sym := range []string{"SPY", "AAPL"} {
		set, _ := source.NewMockSource().Load(ctx, sym)
		if err := fs.Save(set); err != nil {
			t.Fatal(err)
		}
	}
	if r := b.HandleCommand(ctx, "/list"); r.Text != "Symbols: AAPL, SPY" {
		t.Errorf("unexpected reply %q", r.Text)
	}

	if r := newTestBot(t).HandleCommand(ctx, "/list"); !strings.Contains(r.Text, "cannot list") {
		t.Errorf("mock source: unexpected reply %q", r.Text)
	}
}
