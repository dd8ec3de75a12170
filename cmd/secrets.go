package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-finder/internal/logger"
	"github.com/spigell/job-finder/internal/secrets"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Manage API keys kept in the OS keychain",
}

var secretsSetCmd = &cobra.Command{
	Use:       "set <gemini|serpapi>",
	Short:     "Store an API key in the OS keychain",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{geminiKeyringAccount, serpapiKeyringAccount},
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		account, err := keyringAccount(args[0])
		if err != nil {
			logger.Fatal("unknown secret", zap.Error(err))
		}

		prompt := promptui.Prompt{
			Label: fmt.Sprintf("%s API key", account),
			Mask:  '*',
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("key must not be empty")
				}
				return nil
			},
		}

		value, err := prompt.Run()
		if err != nil {
			logger.Fatal("reading key", zap.Error(err))
		}

		if err := secrets.Store(account, value); err != nil {
			logger.Fatal("storing key", zap.Error(err))
		}

		logger.Info("key stored in keychain",
			zap.String("service", secrets.KeyringService),
			zap.String("account", account),
		)
	},
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsSetCmd)
}

func keyringAccount(name string) (string, error) {
	switch account := strings.ToLower(strings.TrimSpace(name)); account {
	case geminiKeyringAccount, serpapiKeyringAccount:
		return account, nil
	default:
		return "", fmt.Errorf("%q is not one of %s, %s", name, geminiKeyringAccount, serpapiKeyringAccount)
	}
}
