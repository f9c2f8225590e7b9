package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rosterhq/roster/internal/server"
	"github.com/rosterhq/roster/internal/service"
)

const banner = `
 ___  ___  ___ _____ ___ ___
| _ \/ _ \/ __|_   _| __| _ \
|   / (_) \__ \ | | | _||   /
|_|_\\___/|___/ |_| |___|_|_\
`

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the roster API server",
		Long:  "Start the HTTP server that exposes the employee directory, analytics, and login APIs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, CORS *)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	fmt.Print(banner)
	fmt.Println()

	// Set up logger
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// 1. Open the SQLite store
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	logger.Info("store opened", "path", resolveDataDir())

	// 2. Open the CSV audit log
	auditLog, err := openAuditLog()
	if err != nil {
		st.Close()
		return fmt.Errorf("open audit log: %w", err)
	}

	// 3. Initialize auth service
	jwtSecret := viper.GetString("auth.jwt_secret")
	if jwtSecret == "" {
		jwtSecret = "roster-dev-secret-change-me"
		logger.Warn("auth.jwt_secret not set, using development default")
	}
	tokenTTL := viper.GetDuration("auth.token_ttl")
	if tokenTTL == 0 {
		tokenTTL = 12 * time.Hour
	}
	authSvc := service.NewAuthService(st, auditLog, jwtSecret, tokenTTL, logger)

	// 4. Build and start HTTP server
	srvCfg := server.DefaultConfig()
	srvCfg.Host = host
	srvCfg.Port = port
	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 && !dev {
		srvCfg.CORSOrigins = origins
	}
	if rate := viper.GetInt("server.login_rate_per_min"); rate > 0 {
		srvCfg.LoginRatePerMin = rate
	}

	srv := server.New(srvCfg, st, authSvc, logger)

	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ API base:   http://%s:%d/api/v1\n", host, port)
	fmt.Printf("→ Health:     http://%s:%d/healthz\n", host, port)
	fmt.Println()

	return srv.ListenAndServe()
}
