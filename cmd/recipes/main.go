package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/rahul4469/recipe-browser/internal/controllers"
	"github.com/rahul4469/recipe-browser/internal/logging"
	"github.com/rahul4469/recipe-browser/internal/services"
	"github.com/rahul4469/recipe-browser/internal/term"
)

const name = "recipes"

// overridden during build with ldflags
var version = "dev"

var errFailed = errors.New("request failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCommand(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "Browse recipes from the terminal",
		Version:   version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "base URL of the recipes API",
				Value:   services.DefaultRecipesAPIBaseURL,
				Sources: cli.EnvVars("RECIPES_API_BASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recipes",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return dispatch(cmd, out, errOut, func(i *controllers.Interaction) {
						i.Load(ctx)
					})
				},
			},
			{
				Name:      "show",
				Usage:     "Show a recipe by id",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					id := cmd.Args().First()
					if id == "" {
						return errors.New("recipe id is required")
					}
					return dispatch(cmd, out, errOut, func(i *controllers.Interaction) {
						i.ShowRecipe(ctx, id)
					})
				},
			},
			{
				Name:      "search",
				Usage:     "Search recipes by keyword",
				ArgsUsage: "<term>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "quick",
						Usage: "only show recipes ready in 20 minutes or less",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					form := controllers.SearchForm{
						SearchTerm: strings.Join(cmd.Args().Slice(), " "),
						IsQuick:    cmd.Bool("quick"),
					}
					return dispatch(cmd, out, errOut, func(i *controllers.Interaction) {
						i.OnSearchSubmit(ctx, form)
					})
				},
			},
		},
	}
}

// dispatch runs one interaction against a terminal renderer and reports
// errFailed when the renderer was left showing an error.
func dispatch(cmd *cli.Command, out, errOut io.Writer, fn func(*controllers.Interaction)) error {
	logger := logging.NewStructuredLoggerWithWriter(errOut, name, version, cmd.String("log-level"))
	recipes := services.NewRecipeService(cmd.String("api-url"), nil, logger)

	renderer := term.NewRenderer(out, errOut)
	fn(controllers.NewInteraction(recipes, renderer))

	if renderer.Failed() {
		return errFailed
	}
	return nil
}
