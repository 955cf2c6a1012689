package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scaduxx/folio/pkg/cms"
	"github.com/scaduxx/folio/pkg/config"
	"github.com/scaduxx/folio/pkg/errors"
)

// projectsCommand creates the projects command and its import subcommand.
func (c *CLI) projectsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects from the configured content source",
		Long: `List projects from the configured content source in display order:
pinned order first, then newest first. The counter column is the
position shown on each project page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProjects(cmd.Context(), cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print projects as JSON")

	cmd.AddCommand(c.projectsImportCommand())
	return cmd
}

func (c *CLI) runProjects(ctx context.Context, w io.Writer, asJSON bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	src, closeSource, err := c.openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	prog := newProgress(c.Logger)
	projects, err := src.Projects(ctx)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d projects from %s", len(projects), src.Name()))

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}
	if len(projects) == 0 {
		printInfo(w, "No projects")
		return nil
	}
	fmt.Fprintln(w, projectTable(projects))
	return nil
}

// projectsImportCommand copies a YAML, JSON or TOML project file into the
// MongoDB collection named in [cms.mongo].
func (c *CLI) projectsImportCommand() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a project file into MongoDB",
		Long: `Import a YAML, JSON or TOML project file into the MongoDB collection
configured in [cms.mongo]. Projects are upserted by slug, so importing
the same file twice is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), cmd.OutOrStdout(), args[0], uri)
		},
	}
	cmd.Flags().StringVar(&uri, "mongo-uri", "", "MongoDB URI (overrides cms.mongo.uri and "+config.EnvMongoURI+")")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, w io.Writer, path, uri string) error {
	projects, err := cms.LoadProjects(path)
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	mc := cfg.CMS.Mongo
	if uri != "" {
		mc.URI = uri
	}
	if mc.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "no MongoDB URI: set cms.mongo.uri, %s or --mongo-uri", config.EnvMongoURI)
	}

	src, err := cms.NewMongoSource(ctx, cms.MongoConfig{URI: mc.URI, Database: mc.Database, Collection: mc.Collection})
	if err != nil {
		return err
	}
	defer src.Close()

	spinner := newSpinner(ctx, w, fmt.Sprintf("Importing %d projects...", len(projects)))
	spinner.Start()
	n, err := src.Upsert(ctx, projects)
	if err != nil {
		spinner.StopWithError("Import failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Imported %d projects (%d written)", len(projects), n))
	printDetail(w, "Collection: %s.%s", mc.Database, mc.Collection)
	if cfg.CMS.Driver != config.DriverMongo {
		printNextStep(w, "Serve from MongoDB", `set cms.driver = "mongo" in folio.toml`)
	}
	return nil
}
