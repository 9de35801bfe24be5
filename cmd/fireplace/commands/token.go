package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

var (
	deviceID   string
	gatewayURL string
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage gateway-issued tokens",
	}
	cmd.AddCommand(tokenStoreCmd(), tokenGetCmd(), tokenDeleteCmd(), tokenHasCmd(), tokenListCmd())
	return cmd
}

// slotFlags binds --device and --gateway. An empty --device means this device.
func slotFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&deviceID, "device", "", "device id (default: this device)")
	cmd.Flags().StringVar(&gatewayURL, "gateway", "", "gateway URL, e.g. wss://gw.example.com")
	_ = cmd.MarkFlagRequired("gateway")
}

func resolveDevice() (string, error) {
	if deviceID != "" {
		return deviceID, nil
	}
	return appCtx.Bridge.GetDeviceID()
}

func tokenStoreCmd() *cobra.Command {
	var (
		token    string
		role     string
		scopes   []string
		issuedAt int64
	)
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Store a token for a gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := resolveDevice()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("issued-at") {
				issuedAt = time.Now().UnixMilli()
			}
			if err := appCtx.Bridge.StoreToken(dev, gatewayURL, token, role, scopes, issuedAt); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "stored")
			return nil
		},
	}
	slotFlags(cmd)
	cmd.Flags().StringVar(&token, "token", "", "token issued by the gateway")
	cmd.Flags().StringVar(&role, "role", "", "role granted with the token")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "granted scope (repeatable)")
	cmd.Flags().Int64Var(&issuedAt, "issued-at", 0, "issue time in Unix milliseconds (default now)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func tokenGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a stored token as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := resolveDevice()
			if err != nil {
				return err
			}
			rec, err := appCtx.Bridge.RetrieveToken(dev, gatewayURL)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rec)
		},
	}
	slotFlags(cmd)
	return cmd
}

func tokenDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove a stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := resolveDevice()
			if err != nil {
				return err
			}
			if err := appCtx.Bridge.DeleteToken(dev, gatewayURL); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
	slotFlags(cmd)
	return cmd
}

func tokenHasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "has",
		Short: "Report whether a token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, err := resolveDevice()
			if err != nil {
				return err
			}
			ok, err := appCtx.Bridge.HasToken(dev, gatewayURL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	slotFlags(cmd)
	return cmd
}

func tokenListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every token the secure store can enumerate",
		Long: "Print every token the secure store can enumerate.\n\n" +
			"The OS keychain cannot be enumerated, so an empty list does not prove that no tokens exist.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := appCtx.Bridge.ListTokens()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), all)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
