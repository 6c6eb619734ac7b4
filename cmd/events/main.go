package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-chatbot-be/pkg/events"

	pktNats "portfolio-chatbot-be/pkg/nats"

	"github.com/alecthomas/kong"
)

var cli struct {
	NatsURL string `help:"NATS server URL" default:"nats://localhost:4222" env:"NATS_URL"`
	Subject string `help:"Subject filter" default:"events.>"`
	Durable string `help:"Durable consumer name" default:"events-tail"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("events"),
		kong.Description("Print chat and ingest events published to the event stream."),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(cli.NatsURL)
	kctx.FatalIfErrorf(err)
	defer sub.Close()

	err = sub.Subscribe(ctx, cli.Subject, cli.Durable, func(ctx context.Context, event events.Event) error {
		payload, err := json.Marshal(event.Payload())
		if err != nil {
			return err
		}
		fmt.Printf("%s %-18s %s\n", event.Timestamp().Format(time.RFC3339), event.EventType(), payload)
		return nil
	})
	kctx.FatalIfErrorf(err)

	<-ctx.Done()
}
