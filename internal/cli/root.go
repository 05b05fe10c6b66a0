package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"Gigbell/internal/app"
	"Gigbell/internal/config"
	"Gigbell/internal/initial"
	"Gigbell/pkg/zlog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	version = "dev"
	commit  = "none"
)

// DBOpener 测试时替换成内存库
type DBOpener func(conf *config.Config) (*gorm.DB, error)

type rootOptions struct {
	configPath string
	openDB     DBOpener
	logStderr  bool
}

func newRootCmd(openDB DBOpener) *cobra.Command {
	opts := &rootOptions{openDB: openDB}
	if opts.openDB == nil {
		opts.openDB = initial.NewGormDB
	}

	cmd := &cobra.Command{
		Use:           "gigbell",
		Short:         "Concert notification backend",
		Long:          "Gigbell creates ticket-open, D-1 and new-performance notifications and forwards them to devices.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the toml config file")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newDispatchCmd(opts))
	cmd.AddCommand(newReconcileCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command with an injected database.
func NewRootCmdForTest(openDB DBOpener) *cobra.Command {
	return newRootCmd(openDB)
}

func Execute() error {
	err := newRootCmd(nil).Execute()
	zlog.Sync()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gigbell %s (%s)\n", version, commit)
		},
	}
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	conf, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	zlog.Init(zlog.Options{LogPath: conf.LogConfig.LogPath, Level: conf.LogConfig.Level, Stderr: o.logStderr})
	return conf, nil
}

// withApp 一次性命令：组装但不启动后台组件，结束时释放
func (o *rootOptions) withApp(ctx context.Context, mutate func(conf *config.Config), fn func(a *app.App) error) error {
	conf, err := o.loadConfig()
	if err != nil {
		return err
	}
	if mutate != nil {
		mutate(conf)
	}
	db, err := o.openDB(conf)
	if err != nil {
		return err
	}
	a, err := app.New(conf, db)
	if err != nil {
		return err
	}
	runErr := fn(a)
	if err := a.Close(ctx); err != nil {
		zlog.L().Sugar().Warnw("close app", "error", err)
	}
	return runErr
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
