// Command verifier runs a single student verification from the command line.
//
// Usage:
//
//	verifier -config configs/config.yaml -school mit <verification-url>
//
// The positional argument is the landing URL carrying the verificationId
// query parameter, or the bare verification id itself.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/edverify/sheerid-verifier/pkg/attemptstore"
	"github.com/edverify/sheerid-verifier/pkg/config"
	"github.com/edverify/sheerid-verifier/pkg/document"
	"github.com/edverify/sheerid-verifier/pkg/identity"
	"github.com/edverify/sheerid-verifier/pkg/organization"
	"github.com/edverify/sheerid-verifier/pkg/sheerid"
	"github.com/edverify/sheerid-verifier/pkg/verification"
	verifyservice "github.com/edverify/sheerid-verifier/pkg/verification/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to configuration file")
	school := flag.String("school", "", "Catalog key of the school to verify against")
	firstName := flag.String("first-name", "", "First name (random when empty)")
	lastName := flag.String("last-name", "", "Last name (random when empty)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: verifier [flags] <verification-url-or-id>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	outcome, err := run(cfg, logger, *school, *firstName, *lastName, flag.Arg(0))
	if err != nil {
		logger.Error("Verification could not be started", zap.Error(err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(outcome)

	if !outcome.Success && !outcome.Pending {
		os.Exit(1)
	}
}

func run(
	cfg *config.Config,
	logger *zap.Logger,
	school, firstName, lastName, target string,
) (*verification.Outcome, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verificationID, err := sheerid.ParseVerificationID(target)
	if err != nil {
		// Not a landing URL; accept a bare verification id.
		verificationID, err = sheerid.ParseVerificationID("verificationId=" + target)
		if err != nil {
			return nil, fmt.Errorf("no verification id in %q: %w", target, err)
		}
	}

	catalog, err := organization.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load school catalog: %w", err)
	}

	client, err := sheerid.New(&sheerid.Config{
		BaseURL:        cfg.SheerID.BaseURL,
		ProgramID:      cfg.SheerID.ProgramID,
		RequestTimeout: cfg.SheerID.RequestTimeout,
		UploadTimeout:  cfg.SheerID.UploadTimeout,
	}, sheerid.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create verification client: %w", err)
	}

	svc := verifyservice.NewLog(verifyservice.NewService(
		client,
		catalog,
		identity.NewGenerator(),
		document.NewPortalRenderer(),
		attemptstore.NewMemoryStore(),
		logger,
	), logger)

	return svc.Verify(ctx, &verification.Request{
		VerificationID: verificationID,
		FirstName:      firstName,
		LastName:       lastName,
		Organization: verification.OrganizationInput{
			CatalogKey: school,
		},
	})
}
