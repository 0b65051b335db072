package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/appadmin/internal/cliconfig"
	"github.com/bft-labs/appadmin/pkg/ansi"
)

const longHelp = `Host an application with a lifecycle admin bean, or inspect one remotely.

"appadmin run" starts an application context, registers its admin bean and
serves it on the management endpoint. The other commands talk to that
endpoint: they report readiness, read properties and request shutdown.

Configure via file ($HOME/.appadmin/config.toml), APPADMIN_* env vars, or flags.`

var exampleUsage = strings.TrimSpace(`
  appadmin run --web-addr :8080 --properties ./app.toml --watch
  appadmin wait --wait-timeout 30s && appadmin get app.name
  appadmin shutdown --url http://10.0.0.5:9464
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	logger  zerolog.Logger
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig(), logger: cliconfig.NewLogger(os.Stderr, "info")}

	root := &cobra.Command{
		Use:               "appadmin",
		Short:             "Application lifecycle admin: ready state, properties and shutdown over a management endpoint",
		Long:              longHelp,
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.load,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.appadmin/config.toml)")
	pf.StringVar(&c.cfg.AdminName, "admin-name", c.cfg.AdminName, "object name of the admin bean")
	pf.StringVar(&c.cfg.ManagementURL, "url", c.cfg.ManagementURL, "management endpoint URL (default: derived from --management-addr)")
	pf.StringVar(&c.cfg.ManagementAddr, "management-addr", c.cfg.ManagementAddr, "management endpoint listen address")
	pf.StringVar(&c.cfg.AnsiMode, "ansi", c.cfg.AnsiMode, "colored output: detect, always or never")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn or error")

	root.AddCommand(
		c.runCommand(),
		c.statusCommand(),
		c.getCommand(),
		c.waitCommand(),
		c.shutdownCommand(),
		c.beansCommand(),
	)

	if err := root.Execute(); err != nil {
		c.logger.Error().Err(err).Msg("appadmin")
		os.Exit(1)
	}
}

// load resolves configuration with precedence flags > env > file > defaults
// and applies the process-wide output settings.
func (c *cli) load(cmd *cobra.Command, _ []string) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	mode, err := ansi.ParseMode(c.cfg.AnsiMode)
	if err != nil {
		return err
	}
	ansi.SetMode(mode)
	c.logger = cliconfig.NewLogger(os.Stderr, c.cfg.LogLevel)
	c.logger.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}
