package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	applicationdial "racetcp/application/dial"
	"racetcp/domain/dial"
	"racetcp/infrastructure/args"
	"racetcp/infrastructure/dial/aggregate"
	"racetcp/infrastructure/dial/attempt"
	"racetcp/infrastructure/dial/config"
	"racetcp/infrastructure/dial/orchestrate"
	"racetcp/infrastructure/dial/race"
	"racetcp/infrastructure/logging"
	"racetcp/presentation/cli"
	"racetcp/presentation/ui/tui"
)

const defaultHappyEyeballsDelay = 250 * time.Millisecond

func main() {
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n⏹ interrupt received, cancelling in-flight attempts...")
		appCtxCancel()
	}()

	parsed, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "racedial: %s\n", err)
		printUsage()
		os.Exit(1)
	}
	if len(parsed.Targets) == 0 {
		printUsage()
		os.Exit(1)
	}

	opts := resolveOptions(parsed)

	driver := attempt.NewDefaultDriver()
	racer := race.NewStaggeredRacer()
	orchestrator := orchestrate.NewOrchestrator(driver, racer, aggregate.NewDefaultAggregator())

	for _, target := range parsed.Targets {
		if err := dialOne(appCtx, orchestrator, target, opts, parsed.NoTUI); err != nil {
			fmt.Fprintf(os.Stderr, "racedial: %s: %s\n", target, err)
		}
	}
}

func resolveOptions(parsed cli.Args) applicationdial.Options {
	opts := applicationdial.Options{Logger: logging.NewLogLogger()}

	path := parsed.ConfigPath
	if path == "" {
		resolver := config.NewArgumentResolver(config.NewDefaultResolver(), args.NewDefaultProvider())
		if resolved, err := resolver.Resolve(); err == nil {
			path = resolved
		}
	}
	if path != "" {
		if cfg, err := config.NewReader(path).Read(); err == nil {
			opts = cfg.Options()
			opts.Logger = logging.NewLogLogger()
		}
	}

	if opts.HappyEyeballsDelay == nil {
		d := defaultHappyEyeballsDelay
		opts.HappyEyeballsDelay = &d
	}
	if parsed.Delay != nil {
		opts.HappyEyeballsDelay = parsed.Delay
	}
	if parsed.Interleave != nil {
		opts.Interleave = parsed.Interleave
	}
	if parsed.AllErrors {
		opts.AllErrors = true
	}
	return opts
}

func dialOne(ctx context.Context, orchestrator *orchestrate.Orchestrator, target string, opts applicationdial.Options, noTUI bool) error {
	candidates, err := cli.ResolveTarget(ctx, target)
	if err != nil {
		return err
	}

	if noTUI || !isTerminal() {
		fmt.Printf("racing %d candidate(s) for %s...\n", len(candidates), target)
		sock, err := orchestrator.StartConnection(ctx, candidates, opts)
		if err != nil {
			return err
		}
		defer sock.Close()
		fmt.Printf("connected to %s via %s\n", target, sock.RemoteAddr())
		return nil
	}

	return dialWithTUI(ctx, orchestrator, candidates, opts)
}

func dialWithTUI(ctx context.Context, orchestrator *orchestrate.Orchestrator, candidates []dial.AddrCandidate, opts applicationdial.Options) error {
	model := tui.NewModel(candidates)
	program := tea.NewProgram(model)

	opts.Logger = nil
	opts.Observer = func(candidate dial.AddrCandidate, state dial.AttemptState, err error) {
		program.Send(tui.AttemptUpdateMsg{Key: candidate.Sockaddr.String(), State: state, Err: err})
	}

	resultCh := make(chan error, 1)
	go func() {
		_, err := orchestrator.StartConnection(ctx, candidates, opts)
		resultCh <- err
		program.Send(tui.DoneMsg{WinnerIndex: -1})
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	return <-resultCh
}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func printUsage() {
	fmt.Println(`Usage: racedial [flags] host:port [host:port ...]

Flags:
  -delay=<ms>        happy-eyeballs stagger delay (default 250ms)
  -interleave=<n>    address family head-start count
  -all-errors        return every failed attempt's error, not a collapsed one
  -no-tui            disable the live attempt view
  -config=<path>     path to a JSON defaults file`)
}
