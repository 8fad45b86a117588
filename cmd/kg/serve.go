package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matsen/kgraph/internal/serve"
)

var (
	serveRenderer string
	serveAddr     string
	serveWatch    bool
	serveFPS      int
	serveTitle    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the live graph preview server",
	Long: `Run the live preview. Open the printed address in a browser to drag,
zoom and click through the graph; clicking a node with a URL opens it in
a new tab.

With --watch the dataset file is reloaded whenever it changes. A dataset
that fails to load leaves the previous graph on screen.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveRenderer, "renderer", "r", "", "Renderer (force or orbit)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "Reload the dataset when it changes")
	serveCmd.Flags().IntVar(&serveFPS, "fps", 0, "Frame rate (default from config)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "Page title")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	kind := mustRenderer(cfg, serveRenderer)

	opts := serve.Options{
		Addr:  cfg.Serve.Addr,
		Title: serveTitle,
		Engine: serve.EngineOptions{
			Kind:    kind,
			Render:  cfg.Render(),
			FPS:     cfg.Serve.FPS,
			BaseURL: cfg.Serve.BaseURL,
			Load:    serve.FileLoader(cfg.Dataset),
		},
	}
	if serveAddr != "" {
		opts.Addr = serveAddr
	}
	if serveFPS > 0 {
		opts.Engine.FPS = serveFPS
	}
	if serveWatch || cfg.Serve.Watch {
		if cfg.Dataset == "" {
			exitWithError(ExitConfigError, "--watch needs a dataset file; the built-in dataset never changes")
		}
		opts.WatchPath = cfg.Dataset
	}

	srv, err := serve.New(opts)
	if err != nil {
		exitWithError(ExitDataError, "starting server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if humanOutput {
		outputHuman("Serving %s graph on %s\n", accent.Sprint(kind), accent.Sprint("http://"+displayAddr(opts.Addr)))
	}
	if err := srv.Run(ctx); err != nil {
		exitWithError(ExitError, "serving: %v", err)
	}
	if !humanOutput {
		return outputJSON(StatusResponse{Status: "stopped"})
	}
	return nil
}

// displayAddr fills in localhost for addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
