// Command vaultgate-demo drives the vaultgate orchestration core end to end
// from a terminal.
//
// Without a subcommand the binary starts the interactive TUI when stdin is a
// terminal and falls back to the scripted journey otherwise, so the same
// invocation works in CI pipelines. Configuration is layered the usual way:
// flags override VAULTGATE_* environment variables, which override an
// optional YAML config file.
//
//	vaultgate-demo --device-label workstation-7 --totp
//	vaultgate-demo journey --biometric on
//	VAULTGATE_METRICS_LISTEN=:9109 vaultgate-demo
//
// Credentials live in process memory for the lifetime of the run and are
// compared verbatim. Nothing here is a security product; the point is to
// watch the state machine, the audit trail and the metrics move.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	vaultgate "github.com/MrEthical07/vaultgate"
	"github.com/MrEthical07/vaultgate/internal/device"
	"github.com/MrEthical07/vaultgate/internal/tui"
	promexport "github.com/MrEthical07/vaultgate/metrics/export/prometheus"
	"github.com/MrEthical07/vaultgate/zapsink"
)

var version = "dev" // overridden by the linker in release builds

var cfgFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already printed the error.
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd = newRootCmd()

	viper.SetDefault("device.label", defaultDeviceLabel())
	viper.SetDefault("capability.biometric", "auto")
	viper.SetDefault("capability.camera", "auto")
	viper.SetDefault("camera.frame", "")
	viper.SetDefault("totp.enabled", false)
	viper.SetDefault("metrics.listen", "")
	viper.SetDefault("audit.log", "")
}

// newRootCmd creates and configures the root command. Tests create fresh
// instances through this function instead of touching the global.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaultgate-demo",
		Short: "Interactive walkthrough of the vaultgate unlock, setup, auth and vault screens.",
		Long: `vaultgate-demo wires the orchestration core to stand-in device
collaborators and walks the four screens: unlock the system, configure
methods during setup, clear the authentication gate and enter the vault.

Running without a subcommand launches the TUI when stdin is a terminal
and the scripted journey otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return runInteractive()
			}
			return runJourney(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newJourneyCmd())

	cmd.Version = version

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./vaultgate-demo.yaml)")
	cmd.PersistentFlags().String("device-label", defaultDeviceLabel(), "label attached to audit events from this run")
	cmd.PersistentFlags().String("biometric", "auto", `system biometric capability ("auto", "on", "off")`)
	cmd.PersistentFlags().String("camera", "auto", `camera capability ("auto", "on", "off")`)
	cmd.PersistentFlags().String("face-frame", "", "file to read camera frames from instead of the built-in frame")
	cmd.PersistentFlags().Bool("totp", false, "offer TOTP enrollment during setup")
	cmd.PersistentFlags().String("metrics-listen", "", `serve Prometheus text on this address (e.g. ":9109")`)
	cmd.PersistentFlags().String("audit-log", "", "append audit events as JSON lines to this file")

	viper.BindPFlag("device.label", cmd.PersistentFlags().Lookup("device-label"))
	viper.BindPFlag("capability.biometric", cmd.PersistentFlags().Lookup("biometric"))
	viper.BindPFlag("capability.camera", cmd.PersistentFlags().Lookup("camera"))
	viper.BindPFlag("camera.frame", cmd.PersistentFlags().Lookup("face-frame"))
	viper.BindPFlag("totp.enabled", cmd.PersistentFlags().Lookup("totp"))
	viper.BindPFlag("metrics.listen", cmd.PersistentFlags().Lookup("metrics-listen"))
	viper.BindPFlag("audit.log", cmd.PersistentFlags().Lookup("audit-log"))

	return cmd
}

// initConfig reads the optional config file and binds VAULTGATE_* environment
// variables. A missing default config file is not an error; a missing file
// passed via --config is.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("vaultgate-demo")
	}

	viper.SetEnvPrefix("VAULTGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			cobra.CheckErr(err)
		}
	}
}

func defaultDeviceLabel() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "vaultgate-demo"
	}
	return host
}

// demoConfig resolves the orchestrator configuration from the effective
// viper settings.
func demoConfig() vaultgate.Config {
	cfg := vaultgate.DefaultConfig()
	cfg.Audit.Enabled = true
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	if viper.GetBool("totp.enabled") {
		cfg.TOTP.Enabled = true
		cfg.TOTP.Issuer = "vaultgate-demo"
	}
	return cfg
}

// buildOrchestrator assembles the core with collaborators resolved from the
// effective configuration. Callers own the sink lifecycle; the orchestrator
// is closed by the caller once the session ends.
func buildOrchestrator(challenger vaultgate.BiometricChallenger, sink vaultgate.AuditSink) (*vaultgate.Orchestrator, error) {
	return vaultgate.New().
		WithConfig(demoConfig()).
		WithCapabilityProbe(resolveProbe()).
		WithBiometricChallenger(challenger).
		WithCamera(resolveCamera()).
		WithAuditSink(sink).
		Build()
}

// resolveProbe starts from host detection and applies explicit overrides, so
// a laptop without a camera can still demo the face flow with --camera on.
func resolveProbe() vaultgate.CapabilityProbe {
	probe := device.Detect()
	return probe.Override(
		triState(viper.GetString("capability.biometric"), probe.SupportsSystemBiometric()),
		triState(viper.GetString("capability.camera"), probe.SupportsCamera()),
	)
}

func triState(value string, detected bool) bool {
	switch strings.ToLower(value) {
	case "on", "true", "yes":
		return true
	case "off", "false", "no":
		return false
	default:
		return detected
	}
}

// resolveCamera picks the frame source. A file path makes every capture
// re-read the file, which is handy for swapping the frame mid-session.
func resolveCamera() vaultgate.Camera {
	if path := viper.GetString("camera.frame"); path != "" {
		return device.FileCamera{Path: path}
	}
	return device.StaticFrameCamera{Frame: []byte("vaultgate demo frame")}
}

// openAuditLogger returns a JSON-lines zap logger over the audit.log file,
// or nil when no file is configured.
func openAuditLogger() (*zap.Logger, func(), error) {
	path := viper.GetString("audit.log")
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(f),
		zapcore.InfoLevel,
	)
	logger := zap.New(core)
	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

func runInteractive() error {
	auditLogger, closeLog, err := openAuditLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// Without a log file the TUI stays silent; stray log lines tear the
	// alternate screen.
	var sink vaultgate.AuditSink = vaultgate.NoOpSink{}
	if auditLogger != nil {
		sink = zapsink.New(auditLogger)
	}

	orch, err := buildOrchestrator(device.NewScriptedChallenger(600*time.Millisecond), sink)
	if err != nil {
		return err
	}
	defer orch.Close()

	stopMetrics, err := serveMetrics(orch)
	if err != nil {
		return err
	}
	defer stopMetrics()

	program := tea.NewProgram(tui.New(orch, viper.GetString("device.label")), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// serveMetrics exposes the Prometheus text rendering when metrics.listen is
// set, so a scrape can watch a live session.
func serveMetrics(orch *vaultgate.Orchestrator) (func(), error) {
	addr := viper.GetString("metrics.listen")
	if addr == "" {
		return func() {}, nil
	}

	exporter := promexport.NewPrometheusExporter(orch)
	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = server.Serve(ln) }()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}, nil
}
