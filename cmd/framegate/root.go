package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/framegate/i18n"
)

var rootCmd = &cobra.Command{
	Use:   "framegate",
	Short: "framegate validates tabular data against declarative schemas",
	Long:  `framegate compiles YAML schema documents and checks JSON tables against them, reporting every violation found in one pass.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		lang, _ := cmd.Flags().GetString("lang")
		i18n.SetLanguage(lang)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("lang", "en", "Message language (en or ja)")
}
