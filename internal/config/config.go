package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	domainErrors "github.com/webcompat/issue-importer/internal/domain/errors"
)

// Config holds everything a run needs: the target repository, the access
// token for writes and the UI language. It is built once at startup and
// passed by reference into each component that needs it.
type Config struct {
	Repo     string `json:"repo"`
	Token    string `json:"token,omitempty"`
	Language string `json:"language"`
	PathFile string `json:"path_file"`
}

const (
	defaultLang = "en"
	configDir   = ".issue-importer"
	configFile  = "config.json"

	// TokenEnvVar overrides the stored token when set.
	TokenEnvVar = "GITHUB_TOKEN"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		dir := filepath.Join(path, configDir)
		configPath = filepath.Join(dir, configFile)

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("could not create the config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("could not read the config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not decode the config file: %w", err)
	}
	config.PathFile = configPath

	if token := os.Getenv(TokenEnvVar); token != "" {
		config.Token = token
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("the loaded configuration is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Repo:     "",
		Token:    os.Getenv(TokenEnvVar),
		Language: defaultLang,
		PathFile: path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create the config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not encode the default configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("could not save the default configuration: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("the configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("the config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode the configuration: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("could not write the config file: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		config.Language = defaultLang
	}

	if config.Repo != "" {
		if _, _, err := SplitRepo(config.Repo); err != nil {
			return err
		}
	}

	return nil
}

// SplitRepo splits an "owner/name" repository path into its parts.
func SplitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", domainErrors.NewConfigError("repo", fmt.Sprintf("%q is not an owner/name repository path", repo), nil)
	}
	return parts[0], parts[1], nil
}
