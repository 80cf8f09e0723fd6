package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"supportdesk/models"
	"supportdesk/notifications"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StatsSource supplies the queue counts summarised in the digest.
type StatsSource interface {
	SummaryStats(ctx context.Context) (models.SupportTicketStats, error)
}

func logDigest(message string) {
	log.Printf("[SUPPORT-DIGEST %s] %s", time.Now().Format(time.RFC3339), message)
}

// AdminEmails returns the addresses of active admins plus any extra addresses, without duplicates.
func AdminEmails(ctx context.Context, db *gorm.DB, extra ...string) ([]string, error) {
	var emails []string
	err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_deleted = ? AND is_blocked = ? AND email <> ''", models.RoleAdmin, false, false).
		Order("id ASC").
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(emails)+len(extra))
	for _, email := range append(emails, extra...) {
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out, nil
}

// DigestBody renders the stats as the inner HTML of the digest email.
func DigestBody(stats models.SupportTicketStats) string {
	return fmt.Sprintf(`
		<p>Here is the current state of the support queue.</p>
		<table style="border-collapse: collapse;">
			<tr><td>Open</td><td><strong>%d</strong></td></tr>
			<tr><td>In progress</td><td><strong>%d</strong></td></tr>
			<tr><td>Resolved</td><td>%d</td></tr>
			<tr><td>Closed</td><td>%d</td></tr>
			<tr><td>Urgent</td><td><strong>%d</strong></td></tr>
			<tr><td>New in the last 24 hours</td><td>%d</td></tr>
			<tr><td>New today</td><td>%d</td></tr>
			<tr><td>Total</td><td>%d</td></tr>
		</table>`,
		stats.Open, stats.InProgress, stats.Resolved, stats.Closed,
		stats.Urgent, stats.Last24h, stats.Today, stats.Total)
}

// RunSupportDigest emails the queue summary to every recipient.
// A failed send is logged and the remaining recipients are still tried.
func RunSupportDigest(ctx context.Context, source StatsSource, mailer notifications.Mailer, recipients []string) error {
	if len(recipients) == 0 {
		logDigest("No recipients, skipping digest")
		return nil
	}

	stats, err := source.SummaryStats(ctx)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Support digest: %d open, %d urgent", stats.Open, stats.Urgent)
	html := notifications.EmailTemplate("Support Queue Digest", DigestBody(stats))

	sent := 0
	for _, to := range recipients {
		if err := mailer.Send(to, subject, html); err != nil {
			logDigest("Failed to send digest to " + to + ": " + err.Error())
			continue
		}
		sent++
	}
	logDigest(fmt.Sprintf("Digest sent to %d of %d recipients", sent, len(recipients)))
	return nil
}

// InitializeSupportDigestScheduler runs the digest on the cron schedule and starts the cron.
func InitializeSupportDigestScheduler(schedule string, db *gorm.DB, source StatsSource, mailer notifications.Mailer, extraRecipient string) (*cron.Cron, error) {
	logDigest("Initializing support digest scheduler...")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx := context.Background()
		recipients, err := AdminEmails(ctx, db, extraRecipient)
		if err != nil {
			logDigest("Error fetching admin emails: " + err.Error())
			return
		}
		if err := RunSupportDigest(ctx, source, mailer, recipients); err != nil {
			logDigest("Error building digest: " + err.Error())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}

	c.Start()
	logDigest("Support digest scheduler started - runs on " + schedule)
	return c, nil
}
