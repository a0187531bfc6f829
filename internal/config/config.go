package config

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/litetable/litetable-sheet/internal/litetable"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	configFileName = "litetable-sheet.conf"
)

type Config struct {
	// Dir holds the journal and the configuration file.
	Dir       string
	ReplicaID string

	GRPCAddress string
	GRPCPort    int
	HTTPAddress string
	HTTPPort    int
	CDCAddress  string
	CDCPort     int

	Peers        []string
	PushInterval time.Duration
	Journal      bool
	JournalSync  bool
	Debug        bool
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		GRPCAddress:  "127.0.0.1",
		GRPCPort:     9090,
		HTTPAddress:  "127.0.0.1",
		HTTPPort:     8080,
		CDCAddress:   "127.0.0.1",
		CDCPort:      32496,
		PushInterval: time.Second,
		Journal:      true,
	}
}

// NewConfig loads the configuration from the sheet directory in the user's home.
func NewConfig() (*Config, error) {
	sheetDir, err := litetable.GetSheetDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet directory: %w", err)
	}
	return Load(sheetDir)
}

// Load reads dir/litetable-sheet.conf. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, configFileName)

	file, err := os.Open(configPath)
	if errors.Is(err, os.ErrNotExist) {
		config := Default()
		config.Dir = dir
		return config, config.finish()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config, err := Parse(file)
	if err != nil {
		return nil, err
	}
	if config.Dir == "" {
		config.Dir = dir
	}
	return config, nil
}

// Parse reads key=value lines on top of the defaults. Lines starting with # are comments,
// unknown keys are ignored.
func Parse(r io.Reader) (*Config, error) {
	config := Default()
	scanner := bufio.NewScanner(r)

	var err error
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "data_dir":
			config.Dir = value
		case "replica_id":
			config.ReplicaID = value
		case "grpc_address":
			config.GRPCAddress = value
		case "grpc_port":
			if config.GRPCPort, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid grpc port value: %w", err)
			}
		case "http_address":
			config.HTTPAddress = value
		case "http_port":
			if config.HTTPPort, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid http port value: %w", err)
			}
		case "cdc_address":
			config.CDCAddress = value
		case "cdc_port":
			if config.CDCPort, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid cdc port value: %w", err)
			}
		case "peers":
			config.Peers = splitList(value)
		case "push_interval":
			seconds, err := strconv.Atoi(value)
			if err != nil || seconds <= 0 {
				return nil, fmt.Errorf("invalid push interval value: %q", value)
			}
			config.PushInterval = time.Duration(seconds) * time.Second
		case "journal":
			config.Journal = value == "true"
		case "journal_sync":
			config.JournalSync = value == "true"
		case "debug":
			config.Debug = value == "true"
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return config, config.finish()
}

// finish fills in a replica id when none is configured.
func (c *Config) finish() error {
	if c.ReplicaID == "" {
		c.ReplicaID = uuid.NewString()
	}
	if strings.ContainsAny(c.ReplicaID, " \t") {
		return fmt.Errorf("invalid replica id %q", c.ReplicaID)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
