package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/squadracorsepolito/fastspsc"
	"github.com/squadracorsepolito/fastspsc/examples/telemetry"
	"github.com/squadracorsepolito/fastspsc/internal"
	"github.com/squadracorsepolito/fastspsc/questdb"
	"github.com/squadracorsepolito/fastspsc/sink"
)

func main() {
	capacityExponent := flag.Int("exp", 1, "queue capacity as a power of two exponent")
	count := flag.Int("n", 60, "number of values to send")
	withOtel := flag.Bool("otel", false, "export traces and metrics over OTLP")
	questDBAddr := flag.String("questdb", "", "QuestDB address, values are logged when empty")
	misuseGuard := flag.Bool("guard", false, "panic on concurrent use of a queue side")
	flag.Parse()

	ctx, cancelCtx := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancelCtx()

	l := internal.NewLogger("cmd", "demo")

	if *withOtel {
		shutdown, err := telemetry.Init(ctx, telemetry.NewDefaultConfig("fastspsc-demo"))
		if err != nil {
			l.Error("failed to init telemetry", err)
			os.Exit(1)
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdown(shutdownCtx); err != nil {
				l.Error("failed to shutdown telemetry", err)
			}
		}()
	}

	opts := []fastspsc.Option{fastspsc.WithTelemetry("demo")}
	if *misuseGuard {
		opts = append(opts, fastspsc.WithMisuseGuard())
	}

	prod, cons, err := fastspsc.New[string](*capacityExponent, opts...)
	if err != nil {
		l.Error("failed to create queue", err)
		os.Exit(1)
	}

	out, err := newSink(ctx, *questDBAddr)
	if err != nil {
		l.Error("failed to create sink", err)
		os.Exit(1)
	}

	if logSink, ok := out.(*sink.Logger[string]); ok {
		go logSink.RunStats(ctx)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cons.Release()

		received, err := sink.Drain(ctx, cons, out, nil)
		if err != nil {
			l.Error("failed to drain queue", err, "received", received)
			// Stop the producer, nobody reads the queue anymore
			cancelCtx()
		}

		if err := out.Close(context.Background()); err != nil {
			l.Error("failed to close sink", err)
		}
	}()

	sent := 0
	for i := range *count {
		if err := send(ctx, prod, strconv.Itoa(i)); err != nil {
			l.Error("failed to enqueue", err, "value", i)
			break
		}
		sent++
	}
	prod.Release()

	<-done

	l.Info("done", "sent", sent)
}

// send enqueues item, giving up when ctx is done while the queue is full.
func send(ctx context.Context, prod *fastspsc.Producer[string], item string) error {
	wait := fastspsc.SpinWait{}

	for attempt := 0; ; attempt++ {
		ok, err := prod.TryEnqueue(item)
		if err != nil || ok {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		wait.Wait(attempt)
	}
}

func newSink(ctx context.Context, questDBAddr string) (sink.Sink[string], error) {
	if questDBAddr == "" {
		return sink.NewLogger[string]("child", nil), nil
	}

	cfg := questdb.NewDefaultConfig()
	cfg.Address = questDBAddr

	return questdb.NewSink(ctx, cfg, func(item string) *questdb.Row {
		return questdb.NewRow(
			questdb.NewSymbolColumn("queue", "demo"),
			questdb.NewStringColumn("value", item),
		)
	})
}
