// Command formflow renders, lints, serves, and interactively runs form
// blueprints from the terminal.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formflow/pkg/blueprint"
	"github.com/goliatone/go-formflow/pkg/devserver"
	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/metrics"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formflow",
		Short:         "Render and run schema-driven forms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newRunCmd(), newServeCmd(), newLintCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var (
		renderer     string
		output       string
		themeName    string
		themeVariant string
	)

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a blueprint to HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := parseSource(args[0])
			if src == nil {
				return fmt.Errorf("invalid source: %q", args[0])
			}

			gen := orchestrator.New(orchestratorOptions(src)...)
			html, err := gen.Generate(cmd.Context(), orchestrator.Request{
				Source:       src,
				Renderer:     renderer,
				ThemeName:    themeName,
				ThemeVariant: themeVariant,
			})
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, html, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(html))
			return nil
		},
	}

	cmd.Flags().StringVar(&renderer, "renderer", "vanilla", "renderer to use")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&themeName, "theme", "", "theme name")
	cmd.Flags().StringVar(&themeVariant, "variant", "", "theme variant")
	return cmd
}

func newRunCmd() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Fill a blueprint interactively and submit it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := parseSource(args[0])
			if src == nil {
				return fmt.Errorf("invalid source: %q", args[0])
			}

			observer := metrics.MustNewSubmitObserver(prometheus.NewRegistry())
			gen := orchestrator.New(append(
				orchestratorOptions(src),
				orchestrator.WithObserver(observer),
			)...)

			ctrl, err := gen.Session(cmd.Context(), src, endpoint)
			if err != nil {
				return err
			}

			result, err := tui.NewSession().Run(cmd.Context(), ctrl)
			if err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
				return err
			}
			if result.Status != form.StatusSubmitted {
				return fmt.Errorf("submission did not complete: %s", result.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "submission endpoint (defaults to the blueprint URL)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve <blueprint-file>",
		Short: "Serve a blueprint with validation and metrics for development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := devserver.New(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				go func() {
					if err := server.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
						log.Printf("watch stopped: %v", err)
					}
				}()
			}

			httpServer := &http.Server{Addr: addr, Handler: server.Handler()}
			go func() {
				<-ctx.Done()
				_ = httpServer.Close()
			}()

			log.Printf("serving %s on %s", args[0], addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8087", "listen address")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the blueprint when the file changes")
	return cmd
}

func newLintCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lint <blueprint-file>...",
		Short: "Check blueprints for authoring mistakes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			results := map[string]validation.Result{}
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				result := validation.Lint(raw)
				results[path] = result
				if !result.Valid {
					failed++
				}
				if asJSON {
					continue
				}
				if result.Valid && len(result.Issues) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
					continue
				}
				for _, issue := range result.Issues {
					severity := "error"
					if result.Valid {
						severity = "warning"
					}
					if issue.Path != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s (%s)\n", path, severity, issue.Message, issue.Path)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", path, severity, issue.Message)
					}
				}
			}
			if asJSON {
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(results); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d blueprint(s) failed to lint", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable results")
	return cmd
}

// orchestratorOptions enables the HTTP loader for URL sources; file and fs.FS
// sources keep the offline-first default.
func orchestratorOptions(src blueprint.Source) []orchestrator.Option {
	if src != nil && src.Kind() == blueprint.SourceKindURL {
		return []orchestrator.Option{
			orchestrator.WithLoaderOptions(blueprint.WithDefaultSources()),
		}
	}
	return nil
}

func parseSource(raw string) blueprint.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return blueprint.SourceFromURL(path)
	}
	return blueprint.SourceFromFile(path)
}
