// Command digest composes and manages markdown research digests.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shaphero/digest-cli/internal/adapters/driven/config/file"
	"github.com/shaphero/digest-cli/internal/adapters/driven/llm/anthropic"
	"github.com/shaphero/digest-cli/internal/adapters/driven/llm/openai"
	"github.com/shaphero/digest-cli/internal/adapters/driven/storage/sqlite"
	"github.com/shaphero/digest-cli/internal/adapters/driving/cli"
	"github.com/shaphero/digest-cli/internal/connectors"
	"github.com/shaphero/digest-cli/internal/connectors/article"
	"github.com/shaphero/digest-cli/internal/connectors/reddit"
	"github.com/shaphero/digest-cli/internal/core/ports/driven"
	"github.com/shaphero/digest-cli/internal/core/services"
)

// version is overridden at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening digest store: %w", err)
	}
	defer store.Close()

	registry := connectors.NewRegistry()
	defer registry.Close()
	registry.Register(article.New(article.Config{}))
	registry.Register(reddit.New(reddit.Config{
		BaseURL: configStore.GetString("reddit.base_url"),
		Limit:   configStore.GetInt("reddit.limit"),
	}))

	llm, err := buildLLM(configStore)
	if err != nil {
		return err
	}

	cli.SetVersion(version)
	cli.SetComposeService(services.NewComposerService(registry, llm))
	cli.SetLibraryService(services.NewLibraryService(store))
	cli.SetConfigStore(configStore)

	return cli.Execute()
}

// buildLLM constructs the configured LLM adapter, or returns nil when no
// provider is configured. Composition falls back to template prose when
// the LLM is absent.
func buildLLM(cfg driven.ConfigStore) (driven.LLMService, error) {
	provider := cfg.GetString("llm.provider")
	if provider == "" {
		return nil, nil
	}

	apiKey := cfg.GetString("llm.api_key")
	model := cfg.GetString("llm.model")
	baseURL := cfg.GetString("llm.base_url")

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return nil, fmt.Errorf("opening prompt store: %w", err)
	}

	var svc driven.LLMService
	switch provider {
	case "anthropic":
		a, err := anthropic.NewLLMService(anthropic.Config{
			APIKey:  apiKey,
			Model:   model,
			BaseURL: baseURL,
		})
		if err != nil {
			return nil, err
		}
		a.SetPromptStore(prompts)
		svc = a

	case "openai":
		o, err := openai.NewLLMService(openai.Config{
			APIKey:  apiKey,
			Model:   model,
			BaseURL: baseURL,
		})
		if err != nil {
			return nil, err
		}
		o.SetPromptStore(prompts)
		svc = o

	default:
		return nil, fmt.Errorf("unknown llm.provider %q (want anthropic or openai)", provider)
	}

	// An unreachable provider degrades to template prose up front
	// instead of failing every section draft mid-compose.
	if err := svc.Ping(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s model %s unreachable, composing without LLM prose: %v\n",
			provider, svc.ModelName(), err)
		_ = svc.Close()
		return nil, nil
	}

	return svc, nil
}
