// Command tecnicofs-cli is a cobra-based front end over the client
// package, giving interactive or scripted access to a running tecnicofsd
// without writing a new program against the client API each time. This is
// new surface the original project never had: proj3/client only ships a
// library, not a CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tecnicofs/tecnicofs/client"
	"github.com/tecnicofs/tecnicofs/fs"
)

// bindSocketFlag registers the --socket/-s flag on flagSet, the way
// gcsfuse's cfg.BindFlags takes a *pflag.FlagSet directly rather than
// reaching through a cobra command.
func bindSocketFlag(flagSet *pflag.FlagSet, socketPath *string) {
	flagSet.StringVarP(socketPath, "socket", "s", "", "path to the server's UNIX socket (required)")
}

func main() {
	var socketPath string

	root := &cobra.Command{
		Use:   "tecnicofs-cli",
		Short: "Talk to a running TecnicoFS server over its UNIX socket",
	}
	bindSocketFlag(root.PersistentFlags(), &socketPath)
	root.MarkPersistentFlagRequired("socket")

	withClient := func(fn func(*client.Client, []string) (int, error)) func(*cobra.Command, []string) error {
		return func(_ *cobra.Command, args []string) error {
			c, err := client.Mount(socketPath)
			if err != nil {
				return err
			}
			defer c.Unmount()

			result, err := fn(c, args)
			if err != nil {
				return err
			}
			if result < 0 {
				return fmt.Errorf("server returned failure (%d)", result)
			}
			fmt.Println(result)
			return nil
		}
	}

	createCmd := &cobra.Command{
		Use:   "create <path> <f|d>",
		Short: "Create a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: withClient(func(c *client.Client, args []string) (int, error) {
			kind := fs.File
			if args[1] == "d" {
				kind = fs.Directory
			}
			return c.Create(args[0], kind)
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <path>",
		Short: "Delete a node",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(c *client.Client, args []string) (int, error) {
			return c.Delete(args[0])
		}),
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup <path>",
		Short: "Look up a node",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(c *client.Client, args []string) (int, error) {
			return c.Lookup(args[0])
		}),
	}

	moveCmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move or rename a node",
		Args:  cobra.ExactArgs(2),
		RunE: withClient(func(c *client.Client, args []string) (int, error) {
			return c.Move(args[0], args[1])
		}),
	}

	printCmd := &cobra.Command{
		Use:   "print <output-file>",
		Short: "Dump the tree to a file on the server",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(c *client.Client, args []string) (int, error) {
			return c.Print(args[0])
		}),
	}

	mountCmd := &cobra.Command{
		Use:   "mount",
		Short: "Validate that the server socket is reachable, without sending a command",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := client.Mount(socketPath)
			if err != nil {
				return err
			}
			return c.Unmount()
		},
	}

	root.AddCommand(createCmd, deleteCmd, lookupCmd, moveCmd, printCmd, mountCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
