package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"ForecastLens/internal/model"
	"ForecastLens/internal/notifier"
	"ForecastLens/internal/session"
	"ForecastLens/internal/source"
)

// panFraction is the share of the plot width one /left or /right moves.
const panFraction = 0.25

// Bot drives one chart view from chat commands. The chat is a single
// conversation, so at most one view is open at a time.
type Bot struct {
	Sessions *session.Manager
	Layout   model.Layout

	mu     sync.Mutex
	viewID string
}

// New creates a bot rendering charts at layout.
func New(sessions *session.Manager, layout model.Layout) *Bot {
	return &Bot{Sessions: sessions, Layout: layout}
}

// HandleCommand processes a chat command and returns the reply.
func (b *Bot) HandleCommand(ctx context.Context, command string) notifier.Reply {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.Reply{Text: notifier.FormatHelp()}
	}
	// "/chart@MyBot" in group chats
	cmd := strings.ToLower(strings.SplitN(fields[0], "@", 2)[0])

	switch cmd {
	case "/chart":
		if len(fields) < 2 {
			return notifier.Reply{Text: "Usage: /chart SYMBOL"}
		}
		return b.open(ctx, fields[1])
	case "/zoomin":
		return b.gesture(func(v *session.View, pw float64) { v.Zoom(pw/2, -1, pw) })
	case "/zoomout":
		return b.gesture(func(v *session.View, pw float64) { v.Zoom(pw/2, 1, pw) })
	case "/left":
		return b.gesture(func(v *session.View, pw float64) { v.Pan(0, pw*panFraction, pw) })
	case "/right":
		return b.gesture(func(v *session.View, pw float64) { v.Pan(pw*panFraction, 0, pw) })
	case "/reset":
		return b.gesture(func(v *session.View, _ float64) { v.Reset() })
	case "/close":
		return b.close()
	case "/list":
		return b.list(ctx)
	default:
		return notifier.Reply{Text: notifier.FormatHelp()}
	}
}

func (b *Bot) open(ctx context.Context, symbol string) notifier.Reply {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, err := b.Sessions.Open(ctx, symbol, b.Layout)
	if err != nil {
		log.Printf("[WARN] bot open %s: %v", symbol, err)
		switch {
		case errors.Is(err, source.ErrNotFound):
			return notifier.Reply{Text: fmt.Sprintf("No forecast for %s.", source.NormalizeSymbol(symbol))}
		case errors.Is(err, source.ErrInvalid):
			return notifier.Reply{Text: fmt.Sprintf("Invalid symbol %q.", symbol)}
		default:
			return notifier.Reply{Text: "Could not load the chart, try again later."}
		}
	}
	if b.viewID != "" {
		// the previous chart may already have been swept
		_ = b.Sessions.Close(b.viewID)
	}
	b.viewID = v.ID
	return render(v)
}

func (b *Bot) gesture(apply func(v *session.View, plotWidth float64)) notifier.Reply {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, reply, ok := b.current()
	if !ok {
		return reply
	}
	apply(v, v.Layout().InnerWidth())
	return render(v)
}

func (b *Bot) close() notifier.Reply {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.viewID == "" {
		return notifier.Reply{Text: "No chart open."}
	}
	id := b.viewID
	b.viewID = ""
	if err := b.Sessions.Close(id); err != nil {
		return notifier.Reply{Text: "Chart already closed."}
	}
	return notifier.Reply{Text: "Chart closed."}
}

func (b *Bot) list(ctx context.Context) notifier.Reply {
	syms, err := b.Sessions.Symbols(ctx)
	switch {
	case errors.Is(err, errors.ErrUnsupported):
		return notifier.Reply{Text: "This source cannot list its symbols."}
	case err != nil:
		log.Printf("[WARN] bot list symbols: %v", err)
		return notifier.Reply{Text: "Could not list symbols, try again later."}
	case len(syms) == 0:
		return notifier.Reply{Text: "No forecasts stored yet."}
	}
	return notifier.Reply{Text: "Symbols: " + strings.Join(syms, ", ")}
}

// current returns the open view, or the reply explaining why there is none.
func (b *Bot) current() (*session.View, notifier.Reply, bool) {
	if b.viewID == "" {
		return nil, notifier.Reply{Text: "No chart open. Use /chart SYMBOL."}, false
	}
	v, err := b.Sessions.Get(b.viewID)
	if err != nil {
		b.viewID = ""
		return nil, notifier.Reply{Text: "Chart expired. Use /chart SYMBOL to open it again."}, false
	}
	return v, notifier.Reply{}, true
}

func render(v *session.View) notifier.Reply {
	f := v.Frame()
	reply := notifier.Reply{Text: notifier.FormatChartSummary(f.Symbol, f.Verdict, f.Summary, f.Render)}
	img, err := v.PNG()
	if err != nil {
		log.Printf("[WARN] render png for %s: %v", f.Symbol, err)
		return reply
	}
	reply.Photo = img
	return reply
}
