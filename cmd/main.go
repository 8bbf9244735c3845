package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"relgraph/config"
	"relgraph/database"
	"relgraph/generate"
	"relgraph/model"
	"relgraph/parser"
	"relgraph/relations"
)

// options глобальные флаги
type options struct {
	configPath string
	verbose    bool
	yes        bool
}

// app собирается перед запуском подкоманды
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	schema  database.Schema
	service *relations.Service
	closers []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
	_ = a.logger.Sync()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

// openSchema: DDL-файл, если он указан в конфиге, иначе живая база
func openSchema(ctx context.Context, cfg *config.Config, logger *zap.Logger) (database.Schema, func() error, error) {
	if cfg.Paths.SchemaFile != "" {
		tables, err := parser.ParseSQLSchema(cfg.Paths.SchemaFile)
		if err != nil {
			return nil, nil, errors.Wrap(err, "parse schema file")
		}
		logger.Info("Using DDL schema", zap.String("file", cfg.Paths.SchemaFile), zap.Int("tables", len(tables)))
		return database.NewStaticSchema(tables), func() error { return nil }, nil
	}

	dialect, err := database.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.GetConnectionString())
	if err != nil {
		return nil, nil, errors.Mark(err, database.ErrUnsupportedSchema)
	}
	return database.NewInspector(db, dialect, cfg.Database.Schema, logger), db.Close, nil
}

func newApp(ctx context.Context, opts *options) (*app, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return nil, errors.Wrap(err, "init logger")
	}

	schema, closeSchema, err := openSchema(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	store := model.NewFileStore(cfg.Paths.ModelsDir, cfg.Paths.FactoriesDir, cfg.Models.Namespace, schema, logger)
	svc := relations.NewService(schema, store, generate.New(cfg.Models.Namespace), logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		schema:  schema,
		service: svc,
		closers: []func() error{closeSchema},
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "relgraph",
		Short: "Infer table relationships and write Eloquent relationship methods",
		Long: `relgraph reads table names and columns from a database (or a DDL file),
infers links from *_id columns and writes relationship methods into Laravel models.

Examples:
  relgraph build User Post        # hasMany posts() on User, belongsTo user() on Post
  relgraph build User --all       # every model reachable from User
  relgraph remove User Post       # remove what build User Post added
  relgraph check-tables --make    # scaffold models for tables without one
  relgraph graph path users comments`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.GetDefaultConfigPath(), "Path to config.yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	root.PersistentFlags().BoolVarP(&opts.yes, "yes", "y", false, "Do not ask for confirmation")

	root.AddCommand(
		newBuildCmd(opts),
		newRemoveCmd(opts),
		newListModelsCmd(opts),
		newCheckTablesCmd(opts),
		newGraphCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.Println(hint)
		}
		os.Exit(1)
	}
}
