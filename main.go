package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediacuts/cli/cmd"
	"github.com/mediacuts/cli/internal/api"
	"github.com/mediacuts/cli/pkg"
	"github.com/mediacuts/cli/pkg/secrets"
	"github.com/spf13/viper"
)

const defaultAPIURL = "http://localhost:8000"

func main() {
	initConfig()

	dataDir := viper.GetString("data_dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Printf("Failed to create data directory %s: %v\n", dataDir, err)
		os.Exit(1)
	}

	db, err := pkg.GetDB(filepath.Join(dataDir, "mediacuts.db"))
	if err != nil {
		if err.Error() == "timeout" {
			fmt.Println("Another instance of the CLI is running. Please close it and try again.")
		} else {
			fmt.Printf("Failed to open local database: %v\n", err)
		}
		os.Exit(1)
	}
	defer db.Close()

	client := api.NewClient(api.Params{
		BaseURL:   viper.GetString("api_url"),
		UserAgent: "mediacuts-cli/" + cmd.AssignedVersion,
		Debug:     viper.GetBool("debug"),
	})

	ctrl := &pkg.ClICtrl{
		Client:   client,
		DB:       db,
		Sessions: secrets.NewSessionStore(db),
	}
	if err := ctrl.Init(); err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	cmd.Execute(ctrl)
}

// initConfig wires config file and environment into viper. Every key can be
// overridden with a MEDIACUTS_ prefixed environment variable.
func initConfig() {
	viper.SetEnvPrefix("mediacuts")
	viper.AutomaticEnv()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	configDir := filepath.Join(home, ".mediacuts")

	viper.SetDefault("api_url", defaultAPIURL)
	viper.SetDefault("data_dir", configDir)
	viper.SetDefault("debug", false)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults and env apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: failed to read config: %v\n", err)
		}
	}
}
