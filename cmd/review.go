package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	reviewrender "github.com/bnema/review-queue/internal/adapters/render/review"
	"github.com/bnema/review-queue/internal/application"
	"github.com/bnema/review-queue/internal/domain"
	"github.com/spf13/cobra"
)

var errUnknownAction = errors.New("unknown action")

type actionVerb string

const (
	verbRate   actionVerb = "rate"
	verbReact  actionVerb = "react"
	verbSkip   actionVerb = "skip"
	verbRefill actionVerb = "refill"
	verbQuit   actionVerb = "quit"
)

type reviewAction struct {
	verb     actionVerb
	rating   int
	text     string
	reaction domain.Reaction
}

func newReviewCmd(app *app) *cobra.Command {
	var user string
	var window int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Evaluate other users' items one at a time",
		Long:  "Reads actions from stdin: rate <0-5> [text], react <heart|smile|like>, skip, refill, quit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := app.resolveUser(user)
			if err != nil {
				return err
			}

			session := application.NewReviewSession(application.SessionDeps{
				Store:  app.store,
				Loader: app.loader,
				Clock:  app.clock,
				Logger: app.logger,
			}, application.SessionConfig{
				User:       userID,
				WindowSize: app.windowSize(window),
			})

			if err := session.Start(cmd.Context()); err != nil {
				return fmt.Errorf("start review session: %w", err)
			}

			return runReviewLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), app, session)
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Acting user id (defaults to RQ_USER)")
	cmd.Flags().IntVar(&window, "window", 0, "Selection window size (defaults to selection.window_size)")

	return cmd
}

func runReviewLoop(ctx context.Context, in io.Reader, out io.Writer, app *app, session *application.ReviewSession) error {
	if err := writeCard(out, app, session); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		action, err := parseReviewAction(line)
		if err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if action.verb == verbQuit {
			break
		}

		if err := applyReviewAction(ctx, session, action); err != nil {
			if ctx.Err() != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "error: %s\n", describeActionError(err))
			continue
		}

		if err := writeCard(out, app, session); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read actions: %w", err)
	}

	stats := session.Stats()
	_, err := fmt.Fprintf(out, "Session summary: reviewed %d | reacted %d | skipped %d | failed %d\n",
		stats.Reviewed, stats.Reacted, stats.Skipped, stats.Failed)
	return err
}

func applyReviewAction(ctx context.Context, session *application.ReviewSession, action reviewAction) error {
	switch action.verb {
	case verbRate:
		return session.Review(ctx, action.rating, action.text)
	case verbReact:
		return session.React(ctx, action.reaction)
	case verbSkip:
		return session.Skip(ctx)
	case verbRefill:
		return session.Refill(ctx)
	default:
		return fmt.Errorf("%w: %s", errUnknownAction, action.verb)
	}
}

func parseReviewAction(line string) (reviewAction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return reviewAction{}, fmt.Errorf("%w: empty input", errUnknownAction)
	}

	verb := actionVerb(strings.ToLower(fields[0]))
	switch verb {
	case verbRate:
		if len(fields) < 2 {
			return reviewAction{}, fmt.Errorf("rate needs a rating between %d and %d", domain.MinRating, domain.MaxRating)
		}
		rating, err := strconv.Atoi(fields[1])
		if err != nil {
			return reviewAction{}, fmt.Errorf("parse rating %q: %w", fields[1], err)
		}
		return reviewAction{
			verb:   verbRate,
			rating: rating,
			text:   sanitizeForTerminal(strings.Join(fields[2:], " ")),
		}, nil
	case verbReact:
		if len(fields) != 2 {
			return reviewAction{}, errors.New("react needs exactly one reaction")
		}
		return reviewAction{verb: verbReact, reaction: domain.Reaction(strings.ToLower(fields[1]))}, nil
	case verbSkip, verbRefill:
		return reviewAction{verb: verb}, nil
	case verbQuit, "q", "exit":
		return reviewAction{verb: verbQuit}, nil
	default:
		return reviewAction{}, fmt.Errorf("%w: %q", errUnknownAction, sanitizeForTerminal(fields[0]))
	}
}

func describeActionError(err error) string {
	switch {
	case errors.Is(err, application.ErrRemoteWriteFailed):
		return fmt.Sprintf("%v (the item was kept, try again)", err)
	case errors.Is(err, application.ErrRemoteFetchFailed):
		return fmt.Sprintf("%v (try refill again)", err)
	case errors.Is(err, application.ErrNoCurrentItem):
		return "nothing to evaluate, use refill or quit"
	default:
		return err.Error()
	}
}

func writeCard(out io.Writer, app *app, session *application.ReviewSession) error {
	item, ok := session.Current()
	rendered, err := app.cardRenderer(reviewrender.Card{
		Item:    item,
		HasItem: ok,
		State:   session.State(),
		Stats:   session.Stats(),
	})
	if err != nil {
		return fmt.Errorf("render review card: %w", err)
	}

	_, err = fmt.Fprintln(out, rendered)
	return err
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
