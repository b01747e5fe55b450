package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onboardiq/onboardiq/pkg/tlsutil"
)

var (
	devCertsOut   string
	devCertsHosts []string
)

var devCertsCmd = &cobra.Command{
	Use:   "dev-certs",
	Short: "Generate a self-signed certificate for local gRPC TLS",
	Long: `Write a development CA (ca.pem) and a server certificate signed by it
(server.pem, server-key.pem). Point TLS_CERT_FILE and TLS_KEY_FILE at the
server files to serve gRPC over TLS.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := tlsutil.GenerateSelfSignedCert(devCertsHosts, devCertsOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote certificate and key to %s\n", devCertsOut)
		return nil
	},
}

func init() {
	devCertsCmd.Flags().StringVar(&devCertsOut, "out", "certs", "Output directory")
	devCertsCmd.Flags().StringSliceVar(&devCertsHosts, "host", []string{"localhost", "127.0.0.1"}, "Host names and IPs the certificate covers")
	rootCmd.AddCommand(devCertsCmd)
}
