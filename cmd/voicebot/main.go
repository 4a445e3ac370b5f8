package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"iyan-ordering/internal/assistant"
	"iyan-ordering/internal/cart"
	"iyan-ordering/internal/checkout"
	"iyan-ordering/internal/config"
	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/orderclient"
	"iyan-ordering/internal/pricing"
	"iyan-ordering/internal/speech"
)

func main() {
	var (
		mode     string
		local    bool
		audioDir string
	)
	flag.StringVar(&mode, "mode", "catalog", "Conversation flow: catalog or scripted")
	flag.BoolVar(&local, "local", false, "Run the catalog dialogue in process instead of calling /api/bot")
	flag.StringVar(&audioDir, "audio-dir", "", "Write synthesized replies into this directory")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stderr, "[voicebot] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := orderclient.New(cfg.APIBaseURL, nil)
	if err != nil {
		logger.Fatalf("init client: %v", err)
	}
	menu, err := client.GetMenu(ctx)
	if err != nil {
		logger.Fatalf("load menu from %s: %v", cfg.APIBaseURL, err)
	}

	var synth *speech.Synthesizer
	if audioDir != "" {
		if err := os.MkdirAll(audioDir, 0o755); err != nil {
			logger.Fatalf("create audio dir: %v", err)
		}
		synth = speech.NewSynthesizer(assistant.RemoteVoice{TTS: client, Play: audioWriter(audioDir)})
	}

	store := cart.NewStore(cart.State{})
	submitter := checkout.New(store, client)

	var handle func(speech.Transcript)
	switch mode {
	case "scripted":
		flow, err := assistant.NewScripted(menu, cfg.DefaultCombo, store, submitter, synth, logger)
		if err != nil {
			logger.Fatalf("init scripted flow: %v", err)
		}
		fmt.Println("bot:", flow.Start(ctx))
		handle = func(t speech.Transcript) {
			res := flow.HandleTranscript(ctx, t)
			switch {
			case res.Err != nil:
				fmt.Println("bot:", checkout.StatusMessage(res.Err))
			case !res.Reply.Recognized:
				fmt.Println("bot: (no match, try again)")
			default:
				fmt.Println("bot:", res.Reply.Message)
			}
			if res.Order != nil {
				printLines(checkout.Confirmation(*res.Order, menu))
			}
		}
	case "catalog":
		var bot assistant.Bot = assistant.RemoteBot{Service: client}
		if local {
			bot = assistant.LocalBot{Machine: dialogue.NewCatalog(menu)}
		}
		session := assistant.New(bot, store, synth, logger)
		fmt.Println("bot:", session.Start(ctx))
		handle = func(t speech.Transcript) {
			out := session.HandleTranscript(ctx, t)
			switch {
			case out.Err != nil:
				fmt.Println("bot:", assistant.FallbackReply)
			case !out.Reply.Recognized:
				fmt.Println("bot: (no match, try again)")
			default:
				fmt.Println("bot:", out.Reply.Message)
			}
			if out.Committed {
				printCart(store.Snapshot(), menu)
			}
			if out.NavigateCheckout {
				order, err := submitter.Submit(ctx)
				fmt.Println("bot:", checkout.StatusMessage(err))
				if err == nil {
					printLines(checkout.Confirmation(order, menu))
				}
			}
		}
	default:
		logger.Fatalf("unknown mode %q", mode)
	}

	listener := speech.NewListener(speech.NewLineRecognizer(os.Stdin))
	if err := listener.Start(ctx, handle); err != nil {
		logger.Fatalf("start listener: %v", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for listener.Listening() {
		select {
		case <-ctx.Done():
			listener.Stop()
		case <-ticker.C:
		}
	}
	if synth != nil {
		deadline := time.Now().Add(5 * time.Second)
		for synth.Speaking() && time.Now().Before(deadline) {
			<-ticker.C
		}
		synth.Stop()
	}
}

func printCart(state cart.State, menu domain.Menu) {
	fmt.Printf("cart: %d plate(s)\n", state.Len())
	for _, item := range state.Items {
		fmt.Printf("  %d x %s  %s\n", item.Quantity, menu.Describe(item), pricing.Format(pricing.Price(item, menu)))
	}
	fmt.Println("  total:", pricing.Format(state.Total(menu)))
}

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Println("  " + l)
	}
}

func audioWriter(dir string) func(context.Context, orderclient.Audio) error {
	var n atomic.Int64
	return func(_ context.Context, audio orderclient.Audio) error {
		ext := ".audio"
		if exts, err := mime.ExtensionsByType(audio.ContentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
		name := filepath.Join(dir, fmt.Sprintf("reply-%03d%s", n.Add(1), ext))
		return os.WriteFile(name, audio.Data, 0o644)
	}
}
