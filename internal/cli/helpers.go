package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scaduxx/folio/pkg/contact"
	"github.com/scaduxx/folio/pkg/embed"
	"github.com/scaduxx/folio/pkg/errors"
)

// embedCommand creates the embed command.
func (c *CLI) embedCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "embed <url>",
		Short: "Show how a video link is embedded on a project page",
		Long: `Classify a video link and print the embed plan used by project pages.

Instagram posts are embedded with Instagram's script; YouTube, Vimeo and
Google Drive links are rewritten to their iframe players. Links from
other hosts are framed unchanged.`,
		Example: `  folio embed https://youtu.be/dQw4w9WgXcQ
  folio embed "https://www.instagram.com/p/abc/?igsh=x" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, ok := embed.Resolve(args[0])
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "empty video URL")
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(w).Encode(plan)
			}
			printKeyValue(w, "Provider", string(plan.Provider))
			printKeyValue(w, "Kind", string(plan.Kind))
			printKeyValue(w, "Src", StyleLink.Render(plan.Src))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")

	return cmd
}

// mailtoCommand creates the mailto command.
func (c *CLI) mailtoCommand() *cobra.Command {
	var (
		to  string
		msg contact.Message
	)

	cmd := &cobra.Command{
		Use:   "mailto",
		Short: "Build the mailto link the contact form opens",
		Long: `Build the mailto link the contact form opens. The recipient defaults to
site.contact.email from folio.toml.`,
		Example: `  folio mailto --name Ann --body "Hi there"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				to = cfg.Site.Contact.Email
			}
			if to == "" {
				return errors.New(errors.ErrCodeInvalidInput, "no recipient: pass --to or set site.contact.email")
			}
			fmt.Fprintln(cmd.OutOrStdout(), contact.Href(to, msg))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient address")
	cmd.Flags().StringVar(&msg.Name, "name", "", "sender name")
	cmd.Flags().StringVar(&msg.Subject, "subject", "", "subject (default \""+contact.DefaultSubject+"\")")
	cmd.Flags().StringVar(&msg.Body, "body", "", "message body")

	return cmd
}
