// Package main provides the aigate CLI: a thin wrapper around the gateway for
// exercising providers from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/quillworks/aigate/gateway"
	"github.com/quillworks/aigate/providers/ai"
)

var (
	configPath string
	provider   string
	model      string
)

func main() {
	// Load .env if present so API keys reach the credential store.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:           "aigate",
		Short:         "Multi-provider AI request gateway",
		Long:          "aigate sends completion, chat, embedding, and image requests through a single canonical API backed by OpenAI, Anthropic, Google, or a local inference server.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "provider to use (openai, anthropic, google, local, custom)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model override for this call")

	rootCmd.AddCommand(chatCmd(), embedCmd(), imageCmd(), usageCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds a gateway client from the persistent flags.
func newClient() (*gateway.Client, error) {
	opts := []gateway.Option{}
	if configPath != "" {
		opts = append(opts, gateway.WithConfigFile(configPath))
	}
	if provider != "" {
		opts = append(opts, gateway.WithProvider(ai.Provider(provider)))
	}
	return gateway.New(opts...)
}

func requestOptions() []ai.RequestOption {
	var opts []ai.RequestOption
	if model != "" {
		opts = append(opts, ai.WithModel(model))
	}
	return opts
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Send a chat message and print the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			reply, err := client.ChatCompletion(context.Background(),
				[]ai.Message{{Role: ai.RoleUser, Content: args[0]}}, requestOptions()...)
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}

func embedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embed <text>",
		Short: "Generate an embedding and print its dimensions and first values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			vector, err := client.GenerateEmbedding(context.Background(), args[0], requestOptions()...)
			if err != nil {
				return err
			}

			preview := vector
			if len(preview) > 8 {
				preview = preview[:8]
			}
			parts := make([]string, len(preview))
			for i, v := range preview {
				parts[i] = fmt.Sprintf("%.5f", v)
			}
			fmt.Printf("%d dimensions: [%s ...]\n", len(vector), strings.Join(parts, ", "))
			return nil
		},
	}
}

func imageCmd() *cobra.Command {
	var count int
	var size string

	cmd := &cobra.Command{
		Use:   "image <prompt>",
		Short: "Generate images and print their URLs or base64 payloads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			opts := append(requestOptions(), ai.WithImageCount(count), ai.WithImageSize(size))
			images, err := client.GenerateImage(context.Background(), args[0], opts...)
			if err != nil {
				return err
			}
			for _, img := range images {
				fmt.Println(img)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of images to generate")
	cmd.Flags().StringVar(&size, "size", ai.DefaultImageSize, "image dimensions")
	return cmd
}

func usageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Print the usage ledger for a fresh client (tokens, requests, cost)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			snap := client.UsageStatistics()
			fmt.Printf("requests: %d\n", snap.Requests)
			fmt.Printf("prompt tokens: %d\n", snap.PromptTokens)
			fmt.Printf("completion tokens: %d\n", snap.CompletionTokens)
			fmt.Printf("total tokens: %d\n", snap.TotalTokens)
			fmt.Printf("estimated cost: $%.6f\n", snap.Cost)
			return nil
		},
	}
}
