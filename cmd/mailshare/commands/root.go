package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/mailshare/internal/compose"
	"github.com/nhle/mailshare/internal/dispatch"
	"github.com/nhle/mailshare/internal/logx"
	"github.com/nhle/mailshare/internal/model"
	"github.com/nhle/mailshare/internal/share"
	"github.com/nhle/mailshare/internal/store"
	"github.com/nhle/mailshare/internal/target"
	"github.com/nhle/mailshare/internal/title"
)

var (
	configPath string

	cfg      *model.AppConfig
	st       *store.SQLiteStore
	svc      *share.Service
	registry *target.Registry
)

// storeSettings adapts the settings store to the share service, applying
// the config-file default when the toggle was never persisted.
type storeSettings struct {
	store *store.SQLiteStore
	def   bool
}

func (s storeSettings) FetchTitlesEnabled(ctx context.Context) bool {
	return s.store.FetchTitlesEnabled(ctx, s.def)
}

func Execute() error {
	root := &cobra.Command{
		Use:          "mailshare",
		Short:        "Turn shared text, links, and files into a ready-to-send email",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logx.Init()

			if configPath == "" {
				configPath = model.DefaultConfigPath()
			}

			var err error
			cfg, err = model.LoadConfig(configPath)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return fmt.Errorf("creating data directory: %w", err)
			}
			st, err = store.NewSQLiteStore(cfg.DBPath)
			if err != nil {
				return err
			}

			fetcher := title.NewFetcher(
				time.Duration(cfg.ConnectTimeoutMS)*time.Millisecond,
				time.Duration(cfg.ReadTimeoutMS)*time.Millisecond,
			)
			svc = share.NewService(
				storeSettings{store: st, def: cfg.FetchTitles},
				fetcher,
				compose.Options{SubjectMax: cfg.SubjectMax},
			)

			registry = target.NewRegistry(
				dispatch.NewMailto(),
				dispatch.NewEML(cfg.EMLDir, cfg.SMTP.From),
				dispatch.NewSMTP(cfg.SMTP),
			)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st != nil {
				return st.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(
		&configPath, "config", "",
		"config file (default ~/.config/mailshare/config.yaml)",
	)

	root.AddCommand(
		shareCmd(),
		recipientsCmd(),
		targetsCmd(),
		historyCmd(),
		smtpCmd(),
	)
	return root.Execute()
}
