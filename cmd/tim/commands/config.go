package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tim-io/timapi/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration stored in ~/.tim/config.yml.
// Passwords are never persisted; logins save the issued session token.
type Config struct {
	API       string `json:"api,omitempty"        yaml:"api,omitempty"`
	Username  string `json:"username,omitempty"   yaml:"username,omitempty"`
	Token     string `json:"token,omitempty"      yaml:"token,omitempty"`
	TokenType string `json:"token_type,omitempty" yaml:"token_type,omitempty"`
	Output    string `json:"output,omitempty"     yaml:"output,omitempty"`
	Cache     string `json:"cache,omitempty"      yaml:"cache,omitempty"`
	NATSURL   string `json:"nats_url,omitempty"   yaml:"nats_url,omitempty"`
}

var configMu sync.Mutex

// loadConfig builds the effective configuration from viper, which merges the
// config file, environment variables and flags.
func loadConfig() *Config {
	return &Config{
		API:       viper.GetString("api"),
		Username:  viper.GetString("username"),
		Token:     viper.GetString("token"),
		TokenType: viper.GetString("token_type"),
		Output:    viper.GetString("output"),
		Cache:     viper.GetString("cache"),
		NATSURL:   viper.GetString("nats_url"),
	}
}

// saveConfigStruct writes the configuration to the active config file,
// creating ~/.tim/config.yml when none is in use yet.
func saveConfigStruct(config *Config) error {
	configMu.Lock()
	defer configMu.Unlock()

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".tim")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// settableKeys are the keys `config set` accepts. The session token is
// managed by login/logout and cannot be set directly.
var settableKeys = map[string]bool{
	"api":      true,
	"username": true,
	"output":   true,
	"cache":    true,
	"nats_url": true,
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify the persisted TIM CLI configuration",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show configuration",
		Long:  "Show the full configuration, or a single key when one is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if len(args) == 0 {
				display := *config
				if display.Token != "" {
					display.Token = constants.MaskedSecret
				}

				return renderOutput(&display, func() error {
					return renderKeyValueTable(map[string]string{
						"api":        display.API,
						"username":   display.Username,
						"token":      display.Token,
						"token_type": display.TokenType,
						"output":     display.Output,
						"cache":      display.Cache,
						"nats_url":   display.NATSURL,
					})
				})
			}

			value, err := configValue(config, args[0])
			if err != nil {
				return err
			}

			fmt.Println(value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if key == "token" || key == "token_type" {
				return constants.ErrTokenCannotBeSet
			}

			if !settableKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			viper.Set(key, value)

			if err := saveConfigStruct(loadConfig()); err != nil {
				return err
			}

			fmt.Printf("Set %s to %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			if !settableKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			viper.Set(key, "")

			if err := saveConfigStruct(loadConfig()); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

func configValue(config *Config, key string) (string, error) {
	switch key {
	case "api":
		return config.API, nil
	case "username":
		return config.Username, nil
	case "token":
		if config.Token == "" {
			return "", nil
		}

		return constants.MaskedSecret, nil
	case "token_type":
		return config.TokenType, nil
	case "output":
		return config.Output, nil
	case "cache":
		return config.Cache, nil
	case "nats_url":
		return config.NATSURL, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}
}
