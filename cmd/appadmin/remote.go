package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/appadmin/pkg/ansi"
	"github.com/bft-labs/appadmin/pkg/management"
)

func (c *cli) client() (*management.Client, error) {
	name, err := management.ParseObjectName(c.cfg.AdminName)
	if err != nil {
		return nil, err
	}
	return management.NewClient(c.cfg.ManagementURL, name,
		management.WithPollInterval(c.cfg.PollInterval),
	), nil
}

func (c *cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the remote application is ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			st, err := cl.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ansi.String(ansi.Bold, st.Name))
			fmt.Fprintln(out, "  ready:                    ", yesNo(st.Ready))
			fmt.Fprintln(out, "  embedded web application: ", yesNo(st.EmbeddedWebApplication))
			return nil
		},
	}
}

func yesNo(v bool) string {
	if v {
		return ansi.String(ansi.Green, "yes")
	}
	return ansi.String(ansi.Red, "no")
}

func (c *cli) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Resolve a property in the remote application's environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			value, ok, err := cl.Property(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("property %q not found", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func (c *cli) waitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until the remote application reports ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			if err := cl.WaitReady(cmd.Context(), c.cfg.WaitTimeout); err != nil {
				return err
			}
			c.logger.Info().Str("name", c.cfg.AdminName).Msg("application ready")
			return nil
		},
	}
	cmd.Flags().DurationVar(&c.cfg.WaitTimeout, "wait-timeout", c.cfg.WaitTimeout, "give up after this long (0 waits forever)")
	cmd.Flags().DurationVar(&c.cfg.PollInterval, "poll", c.cfg.PollInterval, "initial poll interval")
	return cmd
}

func (c *cli) shutdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Ask the remote application to shut down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			if err := cl.Shutdown(cmd.Context()); err != nil {
				return err
			}
			c.logger.Info().Str("name", c.cfg.AdminName).Msg("shutdown requested")
			return nil
		},
	}
}

func (c *cli) beansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "beans",
		Short: "List the beans registered on the management endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cl, err := c.client()
			if err != nil {
				return err
			}
			names, err := cl.Beans(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
