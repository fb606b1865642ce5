package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [paths...]",
		Short: "Resolve source paths to routes, or list every static route",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, entry := range c.app.Routes() {
					cmd.Printf("%s\t%s\n", entry.Route, entry.File)
				}
				return nil
			}
			for _, path := range args {
				route, ok := c.app.Resolve(path)
				if !ok {
					return fmt.Errorf("%s is not a static route entry", path)
				}
				cmd.Printf("%s\t%s\n", route, path)
			}
			return nil
		},
	}
}
