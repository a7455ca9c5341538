package cli

import (
	"github.com/riskibarqy/ladder-league/internal/app"
	"github.com/riskibarqy/ladder-league/internal/domain/league"
	"github.com/riskibarqy/ladder-league/internal/domain/pyramid"
	"github.com/riskibarqy/ladder-league/internal/usecase"
	"github.com/spf13/cobra"
)

func newPrintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print <path>",
		Short: "Print the pyramid of a saved league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadSnapshot(cmd, args[0])
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), pyramid.Render(l.Players()))
		},
	}
}

func newWinnerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "winner <path>",
		Short: "Print the top ranked player of a saved league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadSnapshot(cmd, args[0])
			if err != nil {
				return err
			}
			winner, err := l.Winner()
			if err != nil {
				return userError(usecase.MarkKind(err, "get winner"))
			}
			return writeLine(cmd.OutOrStdout(), winner)
		},
	}
}

func loadSnapshot(cmd *cobra.Command, path string) (*league.League, error) {
	rt, err := runtimeFrom(cmd)
	if err != nil {
		return nil, err
	}

	repo, closeRepo, err := app.NewRepository(cmd.Context(), rt.cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeRepo() }()

	l, err := repo.Load(cmd.Context(), path)
	if err != nil {
		return nil, userError(usecase.MarkKind(err, "load snapshot"))
	}
	return l, nil
}
