// Command sim runs the simulation from a content bundle on disk, one
// year per iteration, optionally exposing the debug HTTP and WebSocket
// APIs while it runs. Modeled on the teacher's cmd/cli entrypoint:
// flag-based configuration, lipgloss terminal styling, no external
// config framework.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"halfearth/internal/broadcast"
	"halfearth/internal/content"
	"halfearth/internal/httpapi"
	"halfearth/internal/logger"
	"halfearth/internal/rng"
	"halfearth/internal/state"
	"halfearth/internal/wsapi"
	"halfearth/pkg/climate"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))
)

func main() {
	bundlePath := flag.String("bundle", "", "path to a YAML content bundle")
	resumePath := flag.String("resume", "", "path to a save document produced by -save, used instead of -bundle")
	savePath := flag.String("save", "", "path to write a save document to once the run completes")
	years := flag.Int("years", 50, "number of years to simulate")
	seed := flag.Int64("seed", 1, "random seed")
	sensitivity := flag.Float64("sensitivity", 0.0018, "climate model sensitivity (degC per GtCO2eq)")
	serve := flag.Bool("serve", false, "serve the debug HTTP/WebSocket API while simulating")
	addr := flag.String("addr", ":8080", "debug API listen address")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	flag.Parse()

	if err := logger.Init(logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Shutdown()

	if *bundlePath == "" && *resumePath == "" {
		fmt.Fprintln(os.Stderr, "one of -bundle or -resume is required")
		os.Exit(1)
	}

	cfg := runConfig{
		bundlePath:  *bundlePath,
		resumePath:  *resumePath,
		savePath:    *savePath,
		years:       *years,
		seed:        *seed,
		sensitivity: float32(*sensitivity),
		serve:       *serve,
		addr:        *addr,
	}
	if err := run(cfg); err != nil {
		logger.Get().Error("sim: run failed", zap.Error(err))
		os.Exit(1)
	}
}

type runConfig struct {
	bundlePath  string
	resumePath  string
	savePath    string
	years       int
	seed        int64
	sensitivity float32
	serve       bool
	addr        string
}

func loadState(cfg runConfig) (*state.State, error) {
	if cfg.resumePath != "" {
		doc, err := os.ReadFile(cfg.resumePath)
		if err != nil {
			return nil, fmt.Errorf("read save document: %w", err)
		}
		s, err := content.LoadDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("load save document: %w", err)
		}
		return s, nil
	}

	f, err := os.Open(cfg.bundlePath)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	s, err := content.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	return s, nil
}

func run(cfg runConfig) error {
	s, err := loadState(cfg)
	if err != nil {
		return err
	}
	years, seed, sensitivity, serve, addr := cfg.years, cfg.seed, cfg.sensitivity, cfg.serve, cfg.addr

	fmt.Println(headerStyle.Render(fmt.Sprintf("starting year %d, running %d years", s.World.Year, years)))

	model := climate.NewLinearModel(sensitivity)
	source := rng.New(seed)

	var bus *broadcast.Bus[state.Update]
	var srv *http.Server
	if serve {
		bus = broadcast.New[state.Update]()
		hub := wsapi.NewHub(bus)
		go hub.Run()

		router := httpapi.NewRouter(func() *state.State { return s })
		router.GET("/ws", gin.WrapF(hub.ServeWS))

		srv = &http.Server{Addr: addr, Handler: router}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Get().Error("sim: debug server failed", zap.Error(err))
			}
		}()
		fmt.Println(labelStyle.Render("debug API listening on " + addr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var history []float32
	for i := 0; i < years; i++ {
		select {
		case <-ctx.Done():
			fmt.Println(labelStyle.Render("interrupted"))
			return finish(s, cfg, srv)
		default:
		}

		emissions := s.Co2eqGt()
		tgav := model(emissions, history)
		history = append(history, emissions)

		update := s.StepYear(tgav, source)
		if bus != nil {
			bus.Publish(update)
		}

		logger.WithStepContext(update.Year).Info("sim: step completed",
			zap.Float32("tgav", tgav),
			zap.Int("completed_projects", len(update.CompletedProjects)),
			zap.Int("occurring_events", len(update.Occurring)))

		fmt.Printf("%s %s  %s %.2f°C  %s %d completed\n",
			labelStyle.Render("year"), valueStyle.Render(fmt.Sprint(update.Year)),
			labelStyle.Render("tgav"), tgav,
			labelStyle.Render("projects"), len(update.CompletedProjects))

		if (i+1)%5 == 0 {
			s.FinishCycle()
		}
	}

	if serve {
		fmt.Println(labelStyle.Render("run complete, serving debug API until interrupted"))
		<-ctx.Done()
	}

	return finish(s, cfg, srv)
}

// finish writes the save document, if requested, and shuts down the
// debug server, if one was started.
func finish(s *state.State, cfg runConfig, srv *http.Server) error {
	if cfg.savePath != "" {
		doc, err := content.SaveDocument(s)
		if err != nil {
			return fmt.Errorf("build save document: %w", err)
		}
		if err := os.WriteFile(cfg.savePath, doc, 0o644); err != nil {
			return fmt.Errorf("write save document: %w", err)
		}
		fmt.Println(labelStyle.Render("wrote save document to " + cfg.savePath))
	}
	return shutdown(srv)
}

func shutdown(srv *http.Server) error {
	if srv == nil {
		return nil
	}
	return srv.Shutdown(context.Background())
}
