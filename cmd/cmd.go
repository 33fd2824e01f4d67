// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

const defaultConfigPath = "config.toml"

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "tunetype",
		Usage:   "Pick five songs, preview them and find out your music type",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to a .env file with credential overrides",
				Value: ".env",
			},
		},
		Before:   r.Before,
		After:    r.After,
		Commands: r.register(),
	}
}

// outputFlags are shared by every command that prints catalog or result data.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON (same as --format json)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, markdown, csv or json",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
	}
}

// searchCommand searches the catalog for tracks and artists
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search tracks and artists",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags:  outputFlags(),
		Action: r.Search,
	}
}

// artistCommand lists an artist's top tracks
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "artist",
		Usage:     "List an artist's top tracks",
		ArgsUsage: "<artist-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: append(outputFlags(),
			&cli.BoolFlag{
				Name:  "previews",
				Usage: "Look up a preview clip for every track",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent preview lookups",
				Value: 3,
			},
		),
		Action: r.ArtistTracks,
	}
}

// previewCommand resolves a preview URL without playing it
func previewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Look up the preview clip for a track",
		ArgsUsage: "<track> <artist>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "track"},
			&cli.StringArg{Name: "artist"},
		},
		Flags:  outputFlags(),
		Action: r.Preview,
	}
}

// playCommand plays one preview with a progress bar
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a preview URL once",
		ArgsUsage: "<url>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "width",
				Usage: "Width of the progress bar in cells",
				Value: 40,
			},
			&cli.BoolFlag{
				Name:  "no-probe",
				Usage: "Skip reading the real clip length",
			},
		},
		Action: r.Play,
	}
}

// submitCommand classifies five track IDs
func submitCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "Classify exactly five track IDs",
		ArgsUsage: "<track-id> <track-id> <track-id> <track-id> <track-id>",
		Flags: append(outputFlags(),
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the result page in a browser (needs 'tunetype serve')",
			},
		),
		Action: r.Submit,
	}
}

// resultCommand reads the stored analysis of a session once
func resultCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "result",
		Usage:     "Show the group scores stored for a session (read once)",
		ArgsUsage: "<session-id>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "session"},
		},
		Flags: append(outputFlags(),
			&cli.StringFlag{
				Name:  "group",
				Usage: "Group to show (defaults to the top score)",
			},
			&cli.StringFlag{
				Name:  "explanation",
				Usage: "Explanation to show",
			},
		),
		Action: r.Result,
	}
}

// sessionsCommand manages stored sessions
func sessionsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Inspect stored sessions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List sessions and their unread payloads",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Only list open sessions",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SessionsList,
			},
			{
				Name:      "close",
				Usage:     "Close a session",
				ArgsUsage: "<session-id>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "session"},
				},
				Action: r.SessionsClose,
			},
		},
	}
}

// serveCommand hosts the local result page
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the result page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (defaults to [server] host and port)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand creates the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize the database",
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive picker",
		Action:  r.TUI,
	}
}
