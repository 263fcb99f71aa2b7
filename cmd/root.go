package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ogero",
		Short:         "Ogero portal sensors: quota, consumption and outstanding bills",
		Long:          "ogero tracks Ogero telecom accounts: add portal credentials as entries, read their quota, consumption and unpaid bills as sensors, and serve them over HTTP and Prometheus.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newEntryCmd(app),
		newSensorsCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
