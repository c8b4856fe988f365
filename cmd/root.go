package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-matcher/internal/catalog"
	"github.com/spigell/job-matcher/internal/logger"
)

const (
	app = "job-matcher"

	defaultCatalogPath = "data/jobs.json"
)

type Config struct {
	Catalog    *CatalogConfig    `mapstructure:"catalog"`
	Normalizer *NormalizerConfig `mapstructure:"normalizer"`
	Recommend  *RecommendConfig  `mapstructure:"recommend"`
	AI         *AIConfig         `mapstructure:"ai"`
	Output     string            `mapstructure:"output"`
	Explain    bool              `mapstructure:"explain"`
}

type CatalogConfig struct {
	Path             string `mapstructure:"path"`
	FallbackToSample bool   `mapstructure:"fallback-to-sample"`
}

type NormalizerConfig struct {
	WelfareWords []string `mapstructure:"welfare-words"`
}

type RecommendConfig struct {
	TopN       int      `mapstructure:"top-n"`
	MinSalary  float64  `mapstructure:"min-salary"`
	Industries []string `mapstructure:"industries"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-matcher recommends jobs from a catalog that fit a Holland (RIASEC) interest profile",
	}
)

// Execute executes the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	viper.SetDefault("catalog.path", defaultCatalogPath)
	viper.SetDefault("catalog.fallback-to-sample", true)
	viper.SetDefault("recommend.top-n", 10)
	viper.SetDefault("output", outputText)

	if err := viper.BindEnv("catalog.path", "JOB_MATCHER_CATALOG"); err != nil {
		log.Fatalf("binding JOB_MATCHER_CATALOG environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("catalog", "", "path to the job catalog (json or yaml)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
}

func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Catalog == nil {
		config.Catalog = &CatalogConfig{}
	}
	if config.Normalizer == nil {
		config.Normalizer = &NormalizerConfig{}
	}
	if config.Recommend == nil {
		config.Recommend = &RecommendConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}

// session holds what every command needs once flags and config are resolved.
type session struct {
	ctx    context.Context
	logger *zap.Logger
	config *Config
}

func newSession(cmd *cobra.Command) *session {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting", zap.String("command", cmd.Name()), zap.String("version", version))

	return &session{ctx: cmd.Context(), logger: logger, config: config}
}

func (s *session) loadCatalog() *catalog.Catalog {
	loader := catalog.NewLoader(catalog.LoaderConfig{
		Path:             s.config.Catalog.Path,
		WelfareWords:     s.config.Normalizer.WelfareWords,
		FallbackToSample: s.config.Catalog.FallbackToSample,
	}, s.logger)

	cat, err := loader.Load(s.ctx)
	if err != nil {
		s.logger.Fatal("loading catalog", zap.Error(err))
	}
	return cat
}
