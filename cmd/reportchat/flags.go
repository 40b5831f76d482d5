package main

import "flag"

type rootArgs struct {
	configPath string
	logPath    string
	url        string
	token      string
	model      string
	provider   string
	accent     string
	spawn      string
	saveToken  bool
}

func parseRootArgs(args []string) (rootArgs, error) {
	fs := flag.NewFlagSet("reportchat", flag.ContinueOnError)
	var root rootArgs
	fs.StringVar(&root.configPath, "config", "", "Path to the config file (default ~/.reportchat/config.toml)")
	fs.StringVar(&root.logPath, "log", "", "Path to the log file")
	fs.StringVar(&root.url, "url", "", "Agent gateway base URL (overrides config)")
	fs.StringVar(&root.token, "token", "", "Agent gateway token (overrides config)")
	fs.StringVar(&root.model, "model", "", "Model/agent id to request (overrides config)")
	fs.StringVar(&root.provider, "provider", "", "Wire provider: openai, anthropic or echo (overrides config)")
	fs.StringVar(&root.accent, "accent", "", "Accent color for tool rendering, e.g. #89b4fa")
	fs.StringVar(&root.spawn, "spawn", "", "Command to start the agent process before connecting")
	fs.BoolVar(&root.saveToken, "save-token", false, "Persist the -token value for later sessions")
	if err := fs.Parse(args); err != nil {
		return rootArgs{}, err
	}
	return root, nil
}
