package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"cv-builder/pkg/client"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func withClient(fn func(ctx context.Context, c *client.Client) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, client.New(apiURL))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func idArg(args []string) (uuid.UUID, error) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid CV id %q", args[0])
	}
	return id, nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored CVs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			list, err := c.List(ctx, ownerID)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTEMPLATE\tUPDATED")
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Template, s.UpdatedAt.Local().Format(time.RFC822))
			}
			return w.Flush()
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored CV as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			rec, err := c.Get(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(rec)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored CV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			if err := c.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", id)
			return nil
		})
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a stored CV under a new id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := idArg(args)
		if err != nil {
			return err
		}
		return withClient(func(ctx context.Context, c *client.Client) error {
			rec, err := c.Duplicate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\n", rec.ID, rec.Name)
			return nil
		})
	},
}
