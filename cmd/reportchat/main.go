package main

import (
	"context"
	"os"
	"time"

	"reportchat/internal/agent"
	anthropicmodel "reportchat/internal/agent/anthropic"
	openaimodel "reportchat/internal/agent/openai"
	"reportchat/internal/auth"
	"reportchat/internal/config"
	"reportchat/internal/events"
	"reportchat/internal/history"
	"reportchat/internal/instructions"
	"reportchat/internal/logger"
	"reportchat/internal/procmon"
	"reportchat/internal/runtime"
	"reportchat/internal/tui"
)

const systemPrompt = "You are the Report Agent. Write clear, concise analytical reports. " +
	"When the user asks to merge or summarise scan outputs, call merge_scan_reports. " +
	"Always cite your sources."

var log = logger.Named("main")

func main() {
	logger.Configure()

	root, err := parseRootArgs(os.Args[1:])
	if err != nil {
		logger.Fatalf("parse args: %v", err)
	}

	cfg, err := config.Load(root.configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	applyFlagOverrides(&cfg, root)

	logPath := cfg.Log.Path
	if root.logPath != "" {
		logPath = root.logPath
	}
	if logFile, resolved, err := logger.SetupFile(logPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		log.Infof("logging to %s", resolved)
		defer logFile.Close()
	}

	if root.saveToken {
		if err := auth.SaveToken(cfg.Agent.Token); err != nil {
			logger.Fatalf("save token: %v", err)
		}
		log.Info("token saved")
	}
	if cfg.Agent.Token == "" {
		if token, err := auth.LoadToken(); err != nil {
			log.Warnf("load stored token: %v", err)
		} else {
			cfg.Agent.Token = token
		}
	}

	ctx := context.Background()

	if spawn := cfg.Agent.Spawn; spawn != "" {
		proc, err := procmon.Spawn(ctx, spawn)
		if err != nil {
			logger.Fatalf("spawn agent: %v", err)
		}
		defer proc.Stop()
		if err := proc.WaitReady(ctx, 2*time.Second); err != nil {
			logger.Fatalf("agent not ready: %v", err)
		}
	}

	client := buildClient(cfg.Agent)
	bus := events.NewBus()
	defer bus.Close()

	system := systemPrompt
	if extra := instructions.Discover(""); extra != "" {
		system += "\n\n" + extra
	}

	engine := runtime.New(runtime.Options{
		Client: client,
		Bus:    bus,
		System: system,
		Model:  cfg.Agent.Model,
	})

	hist, err := history.NewDefault()
	if err != nil {
		log.Warnf("prompt history unavailable: %v", err)
	}
	var recall []string
	if hist != nil {
		if recent, err := hist.Recent(200); err != nil {
			log.Warnf("load prompt history: %v", err)
		} else {
			recall = recent
		}
	}

	result, err := tui.Run(tui.Options{
		Bus:    bus,
		Runner: engine,
		Accent: cfg.UI.Accent,
		OnAccentChange: func(accent string) error {
			cfg.UI.Accent = accent
			return config.Save(cfg.Source, cfg)
		},
		Recall: recall,
		OnPrompt: func(text string) {
			if hist == nil {
				return
			}
			if err := hist.Append(text); err != nil {
				log.Warnf("append prompt history: %v", err)
			}
		},
	})
	if err != nil {
		logger.Fatalf("tui: %v", err)
	}
	log.WithField("session", result.SessionID).Infof("session ended with %d messages", len(result.History))
}

func applyFlagOverrides(cfg *config.Config, root rootArgs) {
	if root.url != "" {
		cfg.Agent.URL = root.url
	}
	if root.token != "" {
		cfg.Agent.Token = root.token
	}
	if root.model != "" {
		cfg.Agent.Model = root.model
	}
	if root.provider != "" {
		cfg.Agent.Provider = root.provider
	}
	if root.accent != "" {
		cfg.UI.Accent = root.accent
	}
	if root.spawn != "" {
		cfg.Agent.Spawn = root.spawn
	}
}

// buildClient picks the provider; with no token we fall back to the echo
// client so the surface stays usable offline.
func buildClient(cfg config.AgentConfig) agent.ModelClient {
	switch cfg.Provider {
	case "anthropic":
		client, err := anthropicmodel.New(anthropicmodel.Options{
			Token:   cfg.Token,
			BaseURL: cfg.URL,
			Model:   cfg.Model,
		})
		if err == nil {
			return client
		}
		log.Warnf("anthropic client unavailable (%v), falling back to echo", err)
	case "echo":
	default:
		client, err := openaimodel.New(openaimodel.Options{
			APIKey:  cfg.Token,
			BaseURL: cfg.URL,
			Model:   cfg.Model,
		})
		if err == nil {
			return client
		}
		log.Warnf("openai client unavailable (%v), falling back to echo", err)
	}
	return agent.EchoClient{Prefix: "echo: "}
}
