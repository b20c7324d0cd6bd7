package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"veracity/internal/cache"
	"veracity/internal/llm"
	"veracity/internal/media"
	"veracity/internal/model"
	"veracity/internal/moderate"
	"veracity/internal/normalize"
	"veracity/internal/pipeline"
	"veracity/internal/research"
	"veracity/internal/store"
	"veracity/internal/verdict"
)

// loadConfig builds the effective configuration: defaults, overlaid by
// the config file, overlaid by API-key environment variables. CLI flags
// apply on top in the individual commands.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: ignoring malformed config file %s: %v\n", path, err)
			}
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if key := os.Getenv("PERPLEXITY_API_KEY"); key != "" {
		cfg.Research.PrimaryAPIKey = key
	}
	if token := os.Getenv("X_BEARER_TOKEN"); token != "" {
		cfg.Research.DiscoveryBearerToken = token
	}

	cfg.Output.Verbose = verbose
	return cfg
}

// buildPipeline wires the full verification pipeline from
// configuration. The returned store writer is nil when persistence is
// disabled or unavailable; the caller owns closing it.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, *store.Writer, error) {
	if cfg.LLM.APIKey == "" {
		return nil, nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	client, err := llm.NewOpenAIClient(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("create completion client: %w", err)
	}

	logf := func(string, ...any) {}
	if cfg.Output.Verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}

	var cacheStore *cache.Store
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		cacheStore = cache.NewStore(layered, cfg.Cache.DiskTTL)
	}

	var primary research.Provider
	if cfg.Research.PrimaryAPIKey != "" {
		p, err := research.NewPerplexity(cfg.Research.PrimaryAPIKey, cfg.Research.PrimaryBaseURL, cfg.Research.PrimaryModel)
		if err != nil {
			return nil, nil, fmt.Errorf("create research provider: %w", err)
		}
		primary = p
	} else {
		logf("PERPLEXITY_API_KEY not set: primary research disabled")
	}

	var discovery research.DiscoveryProvider
	if cfg.Research.DiscoveryEnabled && cfg.Research.DiscoveryBearerToken != "" {
		d, err := research.NewXDiscovery(
			cfg.Research.DiscoveryBearerToken,
			cfg.Research.DiscoverySearchLimit,
			&http.Client{Timeout: cfg.HTTP.Timeout},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("create discovery provider: %w", err)
		}
		discovery = d
	} else {
		logf("X_BEARER_TOKEN not set: supplementary discovery disabled")
	}

	deps := pipeline.Deps{
		Normalizer: normalize.New(client),
		Gate:       moderate.NewGate(client),
		Cache:      cacheStore,
		Media: media.NewEngine(client, client, media.Config{
			PollInterval: cfg.Media.PollInterval,
			PollDeadline: cfg.Media.PollDeadline,
			FFmpegPath:   cfg.Media.FFmpegPath,
		}),
		Researcher:  research.NewOrchestrator(primary, discovery, cfg.Research.PrimaryTimeout, cfg.Research.DiscoveryTimeout),
		Synthesizer: verdict.New(client),
		Articles:    pipeline.NewArticleFetcher(cfg.HTTP, client),
		Logf:        logf,
	}

	var writer *store.Writer
	if cfg.Store.Enabled {
		writer, err = store.Open(cfg.Store.Path)
		if err != nil {
			// Persistence is best-effort; a broken store never blocks
			// verification.
			fmt.Fprintf(os.Stderr, "Warning: check history disabled: %v\n", err)
			writer = nil
		} else {
			deps.Recorder = writer
		}
	}

	return pipeline.New(deps), writer, nil
}
