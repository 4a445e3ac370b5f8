package assistant

import (
	"context"

	"iyan-ordering/internal/dialogue"
	"iyan-ordering/internal/domain"
	"iyan-ordering/internal/orderclient"
)

// Bot answers one final transcript given the conversation state and cart.
type Bot interface {
	Greeting(ctx context.Context) (string, error)
	Process(ctx context.Context, text string, state dialogue.State, cart []domain.LineItem) (dialogue.Reply, error)
}

// LocalBot runs the catalog machine in process.
type LocalBot struct {
	Machine *dialogue.Catalog
}

func (b LocalBot) Greeting(context.Context) (string, error) {
	return b.Machine.Greeting(), nil
}

func (b LocalBot) Process(_ context.Context, text string, state dialogue.State, cart []domain.LineItem) (dialogue.Reply, error) {
	return b.Machine.Step(state, text, cart), nil
}

// BotService is the remote half of the order service a RemoteBot needs.
type BotService interface {
	BotGreeting(ctx context.Context) (string, error)
	BotProcess(ctx context.Context, req orderclient.BotRequest) (dialogue.Reply, error)
}

// RemoteBot delegates to the order service.
type RemoteBot struct {
	Service BotService
}

func (b RemoteBot) Greeting(ctx context.Context) (string, error) {
	return b.Service.BotGreeting(ctx)
}

func (b RemoteBot) Process(ctx context.Context, text string, state dialogue.State, cart []domain.LineItem) (dialogue.Reply, error) {
	return b.Service.BotProcess(ctx, orderclient.BotRequest{Message: text, State: state, Cart: cart})
}

var (
	_ Bot = LocalBot{}
	_ Bot = RemoteBot{}
)
