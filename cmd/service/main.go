package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fitbridge/fitbridge/internal"
	"github.com/fitbridge/fitbridge/internal/config"
	"github.com/fitbridge/fitbridge/internal/logging"
	"github.com/fitbridge/fitbridge/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	if cfg.LogsPath != "" {
		logsDirExists, err := pkg.PathExists(filepath.Dir(cfg.LogsPath), true)
		if err != nil {
			log.Fatalf("check logs dir: %s", err)
		}
		if !logsDirExists {
			log.Warnf("logs dir [%s] does not exist, writing logs to STDOUT only", filepath.Dir(cfg.LogsPath))
			cfg.LogsPath = ""
			cfg.LogToStdout = true
		}
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "fitbridge-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	databaseServiceKey := os.Getenv("FITBRIDGE_DB_SERVICE_KEY")
	if databaseServiceKey == "" {
		log.Warnln("database service key not set, use FITBRIDGE_DB_SERVICE_KEY env var to set it; will run with in-memory storage")
	}

	openAIApiKey := os.Getenv("OPENAI_API_KEY")
	deepseekApiKey := os.Getenv("DEEPSEEK_API_KEY")
	if openAIApiKey == "" && deepseekApiKey == "" {
		log.Warnln("no AI provider API key set, use OPENAI_API_KEY / DEEPSEEK_API_KEY env vars; only the mock provider will be usable")
	}

	redisPassword := os.Getenv("FITBRIDGE_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use FITBRIDGE_REDIS_PASS")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			DatabaseServiceKey:      databaseServiceKey,
			OpenAIApiKey:            openAIApiKey,
			DeepseekApiKey:          deepseekApiKey,
			RedisPassword:           redisPassword,
			VersionInfo:             versionInfo,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting down ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
