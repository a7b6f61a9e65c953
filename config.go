package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	port         int
	prefix       string
	profile      bool
	questionTime time.Duration
	redisURL     string
	riddles      string
	seed         int64
	storeBackend string
	storePath    string
	tlsCert      string
	tlsKey       string
	verbose      bool
	version      bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.questionTime <= 0 {
		return fmt.Errorf("invalid question time (must be positive): %s", c.questionTime)
	}
	switch c.storeBackend {
	case "file", "memory", "redis":
	default:
		return fmt.Errorf("invalid store backend (must be one of file, memory, redis): %s", c.storeBackend)
	}
	if c.storeBackend == "redis" && c.redisURL == "" {
		return errors.New("--redis-url is required when --store is redis")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("RIDDLESHIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "riddleshield",
		Short:         "A classroom safety riddle quiz: one host screen, players answering from their own devices.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			if cfg.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: RIDDLESHIELD_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: RIDDLESHIELD_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: RIDDLESHIELD_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: RIDDLESHIELD_PROFILE)")
	fs.DurationVar(&cfg.questionTime, "question-time", 30*time.Second, "time each question stays open (env: RIDDLESHIELD_QUESTION_TIME)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection url for the redis store backend (env: RIDDLESHIELD_REDIS_URL)")
	fs.StringVar(&cfg.riddles, "riddles", "", "path to a JSON riddle set replacing the built-in one (env: RIDDLESHIELD_RIDDLES)")
	fs.Int64Var(&cfg.seed, "seed", 0, "fixed shuffle seed for the question order, 0 picks one at random (env: RIDDLESHIELD_SEED)")
	fs.StringVar(&cfg.storeBackend, "store", "file", "session store backend: file, memory or redis (env: RIDDLESHIELD_STORE)")
	fs.StringVar(&cfg.storePath, "store-path", "players.json", "session file for the file store backend (env: RIDDLESHIELD_STORE_PATH)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: RIDDLESHIELD_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: RIDDLESHIELD_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: RIDDLESHIELD_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: RIDDLESHIELD_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("riddleshield v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
