package config

import (
	"os"
	"strconv"

	flag "github.com/spf13/pflag"
)

type Config struct {
	BindHost      string
	Port          string
	Namespace     string
	Kubeconfig    string
	LogFormat     string
	LogLevel      string
	ContainerPort int
}

func New() *Config {
	cfg := &Config{}

	fs := flag.NewFlagSet("miragex", flag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVar(&cfg.BindHost, "bind-host", os.Getenv("BIND_HOST"), "Bind host")
	fs.StringVar(&cfg.Port, "port", envOrDefault("PORT", "8080"), "Port to listen on")
	fs.StringVar(&cfg.Namespace, "namespace", envOrDefault("NAMESPACE", "default"), "Kubernetes namespace the deployments live in")
	fs.StringVar(&cfg.Kubeconfig, "kubeconfig", os.Getenv("KUBECONFIG"), "Path to a kubeconfig file, used when not running in-cluster")
	fs.StringVar(&cfg.LogFormat, "log-format", "json", "which log format to use")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "which log level to output")
	fs.IntVar(&cfg.ContainerPort, "container-port", envOrDefaultInt("CONTAINER_PORT", 3000), "Port the deployed application listens on inside its container")
	_ = fs.Parse(os.Args[1:])

	return cfg
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
