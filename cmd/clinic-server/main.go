package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/swasthtrack/clinic/internal/config"
	"github.com/swasthtrack/clinic/internal/domain/billing"
	"github.com/swasthtrack/clinic/internal/domain/clinical"
	"github.com/swasthtrack/clinic/internal/domain/dashboard"
	"github.com/swasthtrack/clinic/internal/domain/identity"
	"github.com/swasthtrack/clinic/internal/domain/notification"
	"github.com/swasthtrack/clinic/internal/domain/scheduling"
	"github.com/swasthtrack/clinic/internal/platform/auth"
	"github.com/swasthtrack/clinic/internal/platform/idgen"
	"github.com/swasthtrack/clinic/internal/platform/middleware"
	"github.com/swasthtrack/clinic/internal/platform/reporting"
	"github.com/swasthtrack/clinic/internal/platform/seed"
)

// ledgerAdapter bridges the scheduling service to the billing package's
// view of an appointment, avoiding a direct import between the two domains.
type ledgerAdapter struct {
	svc *scheduling.Service
}

func (a ledgerAdapter) Get(ctx context.Context, id string) (*billing.LedgerAppointment, error) {
	appt, err := a.svc.GetAppointment(ctx, id)
	if err != nil {
		return nil, billing.ErrNotFound
	}
	return &billing.LedgerAppointment{
		ID:            appt.ID,
		PatientName:   appt.PatientName,
		DoctorName:    appt.DoctorName,
		Fee:           appt.Fee,
		PaymentStatus: appt.PaymentStatus,
	}, nil
}

func (a ledgerAdapter) MarkPaid(ctx context.Context, id, method, transactionID string) error {
	_, err := a.svc.MarkPaid(ctx, id, method, transactionID)
	return err
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "SwasthTrack practice management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a report over the demo dataset and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("type")
			name, _ := cmd.Flags().GetString("name")
			format, _ := cmd.Flags().GetString("format")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			svcs := buildServices(cfg)

			ctx := context.Background()
			if err := newSeeder(svcs, logger).Run(ctx); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}

			builder := reporting.NewBuilder(svcs.dashboard, svcs.ids)
			var report *reporting.Report
			switch kind {
			case "practice":
				report, err = builder.PracticeSummary(ctx)
			case "patient":
				if name == "" {
					return fmt.Errorf("--name is required for patient reports")
				}
				report, err = builder.PatientSummary(ctx, name)
			case "doctor":
				if name == "" {
					return fmt.Errorf("--name is required for doctor reports")
				}
				report, err = builder.DoctorActivity(ctx, name)
			default:
				return fmt.Errorf("unknown report type %q (want practice, patient or doctor)", kind)
			}
			if err != nil {
				return err
			}

			path, err := reporting.Save(report, format, cfg.ReportDir)
			if err != nil {
				return err
			}
			fmt.Printf("Report %s written to %s\n", report.ID, path)
			return nil
		},
	}
	cmd.Flags().String("type", "practice", "Report type: practice, patient or doctor")
	cmd.Flags().String("name", "", "Patient or doctor display name (required for those types)")
	cmd.Flags().String("format", "pdf", "Export format: pdf, excel, csv or json")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Build the demo dataset and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
			svcs := buildServices(cfg)

			ctx := context.Background()
			if err := newSeeder(svcs, logger).Run(ctx); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}

			dataset, err := collectDataset(ctx, svcs)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(dataset, "", "  ")
			if err != nil {
				return fmt.Errorf("encode dataset: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

// demoDataset is the full seeded state, in the shape the API serves it.
type demoDataset struct {
	Patients      []*identity.Patient          `json:"patients"`
	Doctors       []*identity.Doctor           `json:"doctors"`
	Appointments  []*scheduling.Appointment    `json:"appointments"`
	VideoCalls    []*scheduling.VideoCall      `json:"video_calls"`
	HealthRecords []*clinical.HealthRecord     `json:"health_records"`
	Vitals        []*clinical.VitalReading     `json:"vitals"`
	Prescriptions []*clinical.Prescription     `json:"prescriptions"`
	Payments      []*billing.Payment           `json:"payments"`
	Invoices      []*billing.Invoice           `json:"invoices"`
	Notifications []*notification.Notification `json:"notifications"`
}

func collectDataset(ctx context.Context, svcs *services) (*demoDataset, error) {
	var (
		ds  demoDataset
		err error
	)
	if ds.Patients, err = svcs.identity.ListPatients(ctx); err != nil {
		return nil, err
	}
	if ds.Doctors, err = svcs.identity.ListDoctors(ctx); err != nil {
		return nil, err
	}
	if ds.Appointments, err = svcs.scheduling.ListAppointments(ctx); err != nil {
		return nil, err
	}
	if ds.VideoCalls, err = svcs.scheduling.ListCalls(ctx); err != nil {
		return nil, err
	}
	if ds.HealthRecords, err = svcs.clinical.ListRecords(ctx); err != nil {
		return nil, err
	}
	if ds.Vitals, err = svcs.clinical.ListVitals(ctx); err != nil {
		return nil, err
	}
	if ds.Prescriptions, err = svcs.clinical.ListPrescriptions(ctx); err != nil {
		return nil, err
	}
	if ds.Payments, err = svcs.billing.ListPayments(ctx); err != nil {
		return nil, err
	}
	if ds.Invoices, err = svcs.billing.ListInvoices(ctx); err != nil {
		return nil, err
	}
	if ds.Notifications, err = svcs.notifications.List(ctx); err != nil {
		return nil, err
	}
	return &ds, nil
}

// services bundles the wired domain layer so serve, report and seed share
// one construction path.
type services struct {
	ids           *idgen.Generator
	identity      *identity.Service
	scheduling    *scheduling.Service
	clinical      *clinical.Service
	billing       *billing.Service
	notifications *notification.Service
	dashboard     *dashboard.Service
}

func buildServices(cfg *config.Config) *services {
	ids := idgen.New()

	identitySvc := identity.NewService(identity.NewPatientRepoMem(), identity.NewDoctorRepoMem(), ids)
	schedulingSvc := scheduling.NewService(scheduling.NewAppointmentRepoMem(), scheduling.NewVideoCallRepoMem(), ids, cfg.MeetBaseURL)
	clinicalSvc := clinical.NewService(clinical.NewHealthRecordRepoMem(), clinical.NewVitalReadingRepoMem(), clinical.NewPrescriptionRepoMem(), ids)
	billingSvc := billing.NewService(billing.NewPaymentRepoMem(), billing.NewInvoiceRepoMem(), ledgerAdapter{svc: schedulingSvc}, ids)
	notificationSvc := notification.NewService(notification.NewRepoMem(), ids)
	dashboardSvc := dashboard.NewService(identitySvc, schedulingSvc, clinicalSvc, billingSvc, notificationSvc)

	return &services{
		ids:           ids,
		identity:      identitySvc,
		scheduling:    schedulingSvc,
		clinical:      clinicalSvc,
		billing:       billingSvc,
		notifications: notificationSvc,
		dashboard:     dashboardSvc,
	}
}

func newSeeder(svcs *services, logger zerolog.Logger) *seed.Seeder {
	return &seed.Seeder{
		Identity:      svcs.identity,
		Scheduling:    svcs.scheduling,
		Clinical:      svcs.clinical,
		Billing:       svcs.billing,
		Notifications: svcs.notifications,
		Log:           logger,
	}
}

// resolveSessionSecret returns the configured signing secret, or a random
// 32-byte key in development when none is set. A random key means sessions
// do not survive a restart, which is fine for a dev server.
func resolveSessionSecret(cfg *config.Config) ([]byte, bool, error) {
	if cfg.SessionSecret != "" {
		return []byte(cfg.SessionSecret), false, nil
	}
	key := make([]byte, 32)
	if _, err := crypto_rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate session secret: %w", err)
	}
	return key, true, nil
}

// provisionSessionRows lazily creates the patient or doctor row backing the
// signed-in account, so a freshly registered user shows up in the directory
// the first time they touch the API. Idempotent per email.
func provisionSessionRows(provider *auth.Provider, identitySvc *identity.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			role := auth.RoleFromContext(ctx)
			if role != auth.RolePatient && role != auth.RoleDoctor {
				return next(c)
			}
			uid := auth.UserIDFromContext(ctx)
			for _, u := range provider.Users() {
				if u.ID != uid {
					continue
				}
				profile := identity.SessionProfile{
					Name:             u.Name,
					Email:            u.Email,
					Phone:            u.Phone,
					DateOfBirth:      u.DateOfBirth,
					Address:          u.Address,
					EmergencyContact: u.EmergencyContact,
					Specialization:   u.Specialization,
					LicenseNumber:    u.LicenseNumber,
				}
				var err error
				if role == auth.RolePatient {
					_, err = identitySvc.EnsurePatientForUser(ctx, profile)
				} else {
					_, err = identitySvc.EnsureDoctorForUser(ctx, profile)
				}
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
				}
				break
			}
			return next(c)
		}
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	secret, generated, err := resolveSessionSecret(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve session secret")
	}
	if generated {
		logger.Warn().Msg("SESSION_SECRET not set; using a random key, sessions will not survive restart")
	}

	// Auth stack
	ids := idgen.New()
	creds := auth.NewCredentialStore(ids)
	sessions := auth.NewSessionStore(cfg.SessionFile)
	provider := auth.NewProvider(creds, sessions)
	issuer := auth.NewTokenIssuer(secret, cfg.SessionDuration())

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(auth.Middleware(issuer, "/api/v1/auth/login", "/api/v1/auth/register", "/health"))

	// Domain layer
	svcs := buildServices(cfg)
	e.Use(provisionSessionRows(provider, svcs.identity))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// API routes
	api := e.Group("/api/v1")

	auth.NewHandler(provider, issuer).RegisterRoutes(api)
	identity.NewHandler(svcs.identity).RegisterRoutes(api)
	scheduling.NewHandler(svcs.scheduling).RegisterRoutes(api)
	clinical.NewHandler(svcs.clinical).RegisterRoutes(api)
	billing.NewHandler(svcs.billing).RegisterRoutes(api)
	notification.NewHandler(svcs.notifications).RegisterRoutes(api)
	dashboard.NewHandler(svcs.dashboard).RegisterRoutes(api)
	reporting.NewHandler(reporting.NewBuilder(svcs.dashboard, svcs.ids)).RegisterRoutes(api)

	// Demo dataset
	if cfg.SeedDemoData {
		if err := newSeeder(svcs, logger).Run(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Graceful shutdown
	go func() {
		addr := ":" + strings.TrimPrefix(cfg.Port, ":")
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
