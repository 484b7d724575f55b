package review

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/review-queue/internal/application"
	"github.com/bnema/review-queue/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const ratingBarWidth = 10

// Card is the session snapshot shown between actions.
type Card struct {
	Item    domain.Item
	HasItem bool
	State   application.State
	Stats   application.SessionStats
}

type RenderOptions struct {
	Now time.Time
}

func renderCard(card Card, s styles) string {
	lines := []string{
		s.title.Render("Review Queue"),
		s.header.Render(sessionHeader(card)),
	}

	if !card.HasItem {
		lines = append(lines, s.empty.Render(emptyCardMessage(card.State)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		s.item.Render(fmt.Sprintf("Item %s", card.Item.ID)),
		s.detail.Render(fmt.Sprintf("owner: %s", card.Item.OwnerID)),
		s.detail.Render(fmt.Sprintf("payload: %s", card.Item.PayloadRef)),
		s.statMeta.Render(evaluationsLabel(card.Item.EvaluationCount)),
	)
	lines = append(lines, s.card.Render(body), s.statMeta.Render(actionHint()))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionHeader(card Card) string {
	return fmt.Sprintf(
		"state: %s | reviewed %d | reacted %d | skipped %d | failed %d",
		card.State, card.Stats.Reviewed, card.Stats.Reacted, card.Stats.Skipped, card.Stats.Failed,
	)
}

func emptyCardMessage(state application.State) string {
	switch state {
	case application.StateExhausted:
		return "Nothing left to review. Try refill later."
	case application.StateFailed:
		return "Could not load items."
	default:
		return "No item loaded."
	}
}

func actionHint() string {
	reactions := make([]string, 0, len(domain.Reactions()))
	for _, reaction := range domain.Reactions() {
		reactions = append(reactions, string(reaction))
	}

	return fmt.Sprintf(
		"rate <%d-%d> [text] | react <%s> | skip | refill | quit",
		domain.MinRating, domain.MaxRating, strings.Join(reactions, "|"),
	)
}

func evaluationsLabel(count int) string {
	if count == 1 {
		return "1 evaluation"
	}
	return fmt.Sprintf("%d evaluations", count)
}

func renderCatalog(stats []domain.ItemStats, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Your Items"),
		s.header.Render(fmt.Sprintf("items: %d", len(stats))),
	}

	if len(stats) == 0 {
		lines = append(lines, s.empty.Render("No items added yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, stat := range stats {
		lines = append(lines, s.section.Render(renderItemStats(stat, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderItemStats(stat domain.ItemStats, opts RenderOptions, s styles) string {
	title := fmt.Sprintf("%s (%s)", stat.Item.PayloadRef, stat.Item.ID)
	if added := formatAdded(stat.Item.CreatedAt, opts.Now); added != "" {
		title += " " + s.statMeta.Render(added)
	}

	parts := []string{
		s.item.Render(title),
		ratingLine(stat, s),
		s.detail.Render(reactionsLabel(stat.Reactions)),
		s.detail.Render(fmt.Sprintf("skips: %d | total: %s", stat.Skips, evaluationsLabel(stat.Item.EvaluationCount))),
	}
	if stat.Item.PayloadRef == "" {
		parts = append(parts, s.warning.Render("[no payload, hidden from reviewers]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func ratingLine(stat domain.ItemStats, s styles) string {
	label := s.statKey.Render("rating:")
	if stat.RatingCount == 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.empty.Render("no reviews yet"))
	}

	suffix := "reviews"
	if stat.RatingCount == 1 {
		suffix = "review"
	}
	meta := s.statMeta.Render(fmt.Sprintf("%s (%d %s)", stat.AverageRatingLabel(), stat.RatingCount, suffix))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label,
		" ",
		renderRatingBar(stat.AverageRating, ratingBarWidth, s),
		" ",
		meta,
	)
}

func renderRatingBar(average float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := (average - domain.MinRating) / float64(domain.MaxRating-domain.MinRating)
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("*", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func reactionsLabel(counts map[domain.Reaction]int) string {
	parts := make([]string, 0, len(domain.Reactions()))
	for _, reaction := range domain.Reactions() {
		parts = append(parts, fmt.Sprintf("%s %d", reaction, counts[reaction]))
	}
	return "reactions: " + strings.Join(parts, " | ")
}

func formatAdded(createdAt, now time.Time) string {
	if createdAt.IsZero() {
		return ""
	}
	if now.IsZero() || createdAt.After(now) {
		return fmt.Sprintf("added %s", createdAt.Format("02 Jan 2006"))
	}

	elapsed := now.Sub(createdAt)
	switch {
	case elapsed < time.Hour:
		return "added just now"
	case elapsed < 24*time.Hour:
		hours := int(elapsed.Hours())
		if hours == 1 {
			return "added 1 hour ago"
		}
		return fmt.Sprintf("added %d hours ago", hours)
	default:
		days := int(elapsed.Hours() / 24)
		if days == 1 {
			return "added 1 day ago"
		}
		return fmt.Sprintf("added %d days ago", days)
	}
}
