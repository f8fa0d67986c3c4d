package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/workorders/internal/cmd/config"
	"github.com/Iron-Ham/workorders/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "workorders",
	Short: "Terminal client for contractor work orders",
	Long: `Workorders shows the orders assigned to a contractor, their stages,
files and property, and lets the contractor log work stages and keep
their contact and payment details up to date.

Identity comes from the chat host's session blob when launched inside
the host, or from a debug user id for local testing.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/workorders/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.PersistentFlags().String("base-url", "", "API origin (overrides api.base_url)")
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	rootCmd.PersistentFlags().String("launch-url", "", "launch URL or query string, e.g. '?debug_user_id=42&order_id=ORD-1'")
	_ = viper.BindPFlag("launch.url", rootCmd.PersistentFlags().Lookup("launch-url"))
	rootCmd.PersistentFlags().String("debug-user", "", "debug user id (overrides the launch URL)")
	_ = viper.BindPFlag("launch.debug_user_id", rootCmd.PersistentFlags().Lookup("debug-user"))
	rootCmd.PersistentFlags().String("order", "", "order to open after bootstrap (overrides the launch URL)")
	_ = viper.BindPFlag("launch.order_id", rootCmd.PersistentFlags().Lookup("order"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WORKORDERS")
	// e.g. WORKORDERS_HOST_INIT_DATA for host.init_data
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
