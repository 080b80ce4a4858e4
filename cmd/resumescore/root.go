package main

import (
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app       = "resumescore"
	envPrefix = "RESUMESCORE"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "resumescore scores a resume against a job description",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for key, env := range map[string]string{
		"gemini-api-key": "GEMINI_API_KEY",
		"gemini-model":   "GEMINI_MODEL",
	} {
		if err := viper.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, "-", "_")), env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resumescore.yaml in current directory, if present)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}
