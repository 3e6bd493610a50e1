package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/placeholder-assets/internal/assets"
	"github.com/ironsheep/placeholder-assets/internal/raster"
	"github.com/ironsheep/placeholder-assets/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logging goes to stderr; serve uses stdout for MCP protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	cmd := "generate"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "placeholder-assets %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return nil
	case "--help", "-h", "help":
		printUsage(stdout)
		return nil
	}

	cfg, err := assets.ConfigFromEnv()
	if err != nil {
		return err
	}
	if cfg.Debug {
		log.Printf("placeholder-assets v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	switch cmd {
	case "generate":
		err = runGenerate(cfg, args, stdout)
	case "list":
		err = runList(cfg, args, stdout)
	case "serve":
		err = runServe(cfg, args)
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", cmd)
	}
	// -h on a subcommand has already printed its flag usage
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "placeholder-assets - generate placeholder sprites and sounds")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  placeholder-assets generate [-out DIR] [-mode solid|placeholder] [-manifest FILE] [names...]")
	fmt.Fprintln(w, "  placeholder-assets list [-manifest FILE]")
	fmt.Fprintln(w, "  placeholder-assets serve [-out DIR] [-manifest FILE]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=DIR             Output root (default assets)\n", assets.EnvOutputDir)
	fmt.Fprintf(w, "  %s=solid|placeholder\n", assets.EnvPNGMode)
	fmt.Fprintf(w, "  %s=HZ      Audio sample rate (default 44100)\n", assets.EnvSampleRate)
	fmt.Fprintf(w, "  %s=0..1        Peak volume (default 0.3)\n", assets.EnvVolume)
	fmt.Fprintf(w, "  %s=debug    Enable debug logging\n", assets.EnvLogLevel)
}

// commonFlags registers the flags shared by every subcommand.
func commonFlags(name string, cfg *assets.Config) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output root directory")
	manifest := fs.String("manifest", "", "JSON manifest to use instead of the built-in one")
	return fs, manifest
}

func loadManifest(path string) (*assets.Manifest, error) {
	if path == "" {
		return assets.DefaultManifest(), nil
	}
	return assets.LoadManifest(path)
}

func runGenerate(cfg assets.Config, args []string, stdout io.Writer) error {
	fs, manifestPath := commonFlags("generate", &cfg)
	mode := fs.String("mode", cfg.PNGMode.String(), "PNG encoder: solid or placeholder")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := raster.ParseMode(*mode)
	if err != nil {
		return err
	}
	cfg.PNGMode = m
	if m == raster.ModePlaceholder {
		log.Printf("warning: placeholder mode writes a fixed pixel payload; only 1x1 sprites will be renderable")
	}

	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Creating placeholder assets...")
	results, err := assets.NewGenerator(cfg, manifest, assets.OSFS{}).Generate(fs.Args()...)
	for _, r := range results {
		fmt.Fprintf(stdout, "  %-7s %s (%d bytes)\n", r.Kind, r.Path, r.Bytes)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Placeholder assets created in %s\n", cfg.OutputDir)
	return nil
}

func runList(cfg assets.Config, args []string, stdout io.Writer) error {
	fs, manifestPath := commonFlags("list", &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		return err
	}

	for _, s := range manifest.Sprites {
		fmt.Fprintf(stdout, "sprite  %-16s %dx%d %s\n", s.Name, s.Width, s.Height, s.Color)
	}
	for _, s := range manifest.Sounds {
		fmt.Fprintf(stdout, "sound   %-16s", s.Name)
		for _, t := range s.Tones {
			fmt.Fprintf(stdout, " %gHz/%dms", t.Frequency, t.DurationMS)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}

func runServe(cfg assets.Config, args []string) error {
	fs, manifestPath := commonFlags("serve", &cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	manifest, err := loadManifest(*manifestPath)
	if err != nil {
		return err
	}

	srv := server.New(cfg, manifest)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
