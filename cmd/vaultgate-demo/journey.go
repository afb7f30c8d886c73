package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	vaultgate "github.com/MrEthical07/vaultgate"
	"github.com/MrEthical07/vaultgate/internal/device"
	promexport "github.com/MrEthical07/vaultgate/metrics/export/prometheus"
	"github.com/MrEthical07/vaultgate/zapsink"
)

const (
	journeyPin      = "2468"
	journeyPassword = "correct-horse"
)

// newJourneyCmd returns the subcommand that walks the four screens without a
// terminal.
func newJourneyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "journey",
		Short: "Run the scripted unlock-setup-auth-vault walkthrough and print metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJourney(cmd.OutOrStdout())
		},
	}
}

// runJourney scripts one full pass over the state machine: unlock, enroll
// every method the capabilities allow, clear the gate method by method and
// lock the vault again. One attempt uses a wrong value on purpose; failures
// surface in the audit trail but never abort the run.
func runJourney(out io.Writer) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	auditLogger, closeLog, err := openAuditLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	sinkLogger := auditLogger
	if sinkLogger == nil {
		sinkLogger = logger.Named("audit")
	}

	orch, err := buildOrchestrator(device.NewScriptedChallenger(0), zapsink.New(sinkLogger))
	if err != nil {
		return err
	}
	defer orch.Close()

	cfg := demoConfig()
	for _, w := range cfg.Lint() {
		logger.Info("posture",
			zap.String("code", w.Code),
			zap.Stringer("severity", w.Severity),
			zap.String("detail", w.Detail),
		)
	}

	ctx := vaultgate.WithPresentationID(
		vaultgate.WithDeviceLabel(context.Background(), viper.GetString("device.label")),
		"journey",
	)

	step := func(name string, fn func() error) {
		if err := fn(); err != nil {
			logger.Warn("step failed", zap.String("step", name), zap.Error(err))
			return
		}
		logger.Info("step ok",
			zap.String("step", name),
			zap.String("screen", orch.Screen().String()),
		)
	}

	step("unlock", func() error { return orch.UnlockSystem(ctx) })
	step("enable pin", func() error { return orch.EnablePin(ctx, journeyPin, journeyPin) })
	step("enable password", func() error { return orch.EnablePassword(ctx, journeyPassword, journeyPassword) })
	if orch.Capabilities().Camera {
		step("enable face", func() error { return orch.EnableFace(ctx) })
	}

	var totpSecret string
	if viper.GetBool("totp.enabled") {
		step("totp enrollment", func() error {
			enrollment, err := orch.BeginTOTPEnrollment(ctx)
			if err != nil {
				return err
			}
			code, err := totp.GenerateCode(enrollment.SecretBase32, time.Now())
			if err != nil {
				return err
			}
			totpSecret = enrollment.SecretBase32
			return orch.ConfirmTOTPEnrollment(ctx, code)
		})
	}

	step("begin authentication", func() error { return orch.BeginAuthentication(ctx) })

	step("pin attempt (wrong value)", func() error { return orch.AttemptPin(ctx, "0000") })

	for _, state := range orch.Snapshot().Methods {
		if !state.Enabled || state.Completed {
			continue
		}
		switch state.Kind {
		case vaultgate.MethodSystemBiometric:
			step("biometric attempt", func() error { return orch.AttemptBiometric(ctx) })
		case vaultgate.MethodPin:
			step("pin attempt", func() error { return orch.AttemptPin(ctx, journeyPin) })
		case vaultgate.MethodPassword:
			step("password attempt", func() error { return orch.AttemptPassword(ctx, journeyPassword) })
		case vaultgate.MethodFace:
			step("face attempt", func() error { return orch.AttemptFace(ctx) })
		case vaultgate.MethodTOTP:
			step("totp attempt", func() error {
				code, err := totp.GenerateCode(totpSecret, time.Now())
				if err != nil {
					return err
				}
				return orch.AttemptTOTP(ctx, code)
			})
		}
	}

	if orch.Screen() == vaultgate.ScreenVault {
		step("lock vault", func() error { return orch.LockVault(ctx) })
	} else {
		logger.Warn("gate not cleared", zap.String("screen", orch.Screen().String()))
	}

	report := orch.PostureReport()
	fmt.Fprintf(out, "final screen: %s\n", report.Screen)
	fmt.Fprintf(out, "enabled methods: %v\n", report.EnabledMethods)
	fmt.Fprintf(out, "configured methods: %v\n", report.ConfiguredMethods)
	fmt.Fprintf(out, "plaintext store: %v, placeholder matcher: %v\n\n",
		report.PlaintextCredentialStore, report.FaceMatcherPlaceholder)

	exporter := promexport.NewPrometheusExporter(orch)
	fmt.Fprint(out, exporter.Render())
	return nil
}
