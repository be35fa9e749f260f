package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
)

// NetAddress is a host:port pair usable as a flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line. See parseFlags.
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

// parseFlags parses args into a partial configuration. Unset flags leave
// zero values so that lower-priority sources can fill them in.
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("usgromana", flag.ContinueOnError)

	var serverAddress NetAddress
	var jsonConfigPath string
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenAlgorithm, "token-algorithm", "", "Token algorithm (HS256, RS256)")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 12h)")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "Additional log file")
	fs.BoolVar(&cfg.App.SeparateUsers, "separate-users", false, "Per-user output folders")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.Storage.UsersFile, "users-file", "", "Users JSON file")
	fs.StringVar(&cfg.Storage.GroupsFile, "groups-file", "", "Group permissions JSON file")
	fs.StringVar(&cfg.Storage.OutputDir, "output-dir", "", "Output directory")
	fs.IntVar(&cfg.Queue.MaxHistorySize, "max-history", 0, "Maximum number of history records")
	fs.StringVar(&cfg.Safety.ClassifierURL, "classifier-url", "", "Content classifier endpoint")
	fs.StringVar(&cfg.Adapter.ExecutorURL, "executor-url", "", "Execution engine endpoint")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.JSONFilePath = jsonConfigPath

	return cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses "host:port". The host may be empty (all interfaces),
// "localhost" or an IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		if net.ParseIP(strings.Trim(host, "[]")) == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
