package cmd

import (
	"fmt"
	cmn "github.com/gagarinchain/offences/common"
	"github.com/gagarinchain/offences/registry"
	"github.com/gagarinchain/offences/run"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

var log = logging.MustGetLogger("cmd")

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "offences",
	Short: "Offence registry of Gagarin.network validators",
	Long:  `Deduplicates offence reports, counts offences per validator and computes slash fractions`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		run.InitLogger(viper.GetString("Log.Level"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to settings.yaml file(default is $HOME/settings.yaml)")
	rootCmd.PersistentFlags().StringP("log.level", "l", "", "Log level, one of DEBUG, INFO, WARNING, ERROR")
	rootCmd.PersistentFlags().StringP("storage.path", "d", "", "Data directory, state is kept in memory when empty")
	rootCmd.PersistentFlags().StringP("storage.backend", "b", "", "Storage backend, 'leveldb' and 'datastore' are supported now")

	bind("Log.Level", "log.level", "OFF_LOG_LEVEL")
	bind("Storage.Path", "storage.path", "OFF_STORAGE_PATH")
	bind("Storage.Backend", "storage.backend", "OFF_STORAGE_BACKEND")

	viper.SetDefault("Log.Level", "INFO")
	viper.SetDefault("Storage.Backend", "leveldb")
	viper.SetDefault("Registry.Escalation", "linear")
	viper.SetDefault("Registry.step_percent", 100)
}

func bind(key string, flag string, env string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		println(err.Error())
	}
	if err := viper.BindEnv(key, env); err != nil {
		println(err.Error())
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	envCfg, envFound := os.LookupEnv("OFF_SETTINGS")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envFound {
		viper.SetConfigFile(envCfg)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigName("settings")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func settings() *cmn.Settings {
	s := &cmn.Settings{}
	if err := viper.Unmarshal(s); err != nil {
		log.Fatal("Can't read settings", err)
	}
	return s
}

//createContext logs emitted batches unless printer is given
func createContext(printer *run.BatchPrinter) *run.Context {
	h := &run.Handlers{OnOffence: &registry.LogHandler{}, LateReport: &registry.LogHandler{}}
	if printer != nil {
		h = &run.Handlers{OnOffence: printer, LateReport: printer}
	}
	ctx, err := run.CreateContext(settings(), h)
	if err != nil {
		log.Fatal(err)
	}
	return ctx
}
