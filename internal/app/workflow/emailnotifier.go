package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/mailer"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// EmailNotifier delivers moderation outcome emails through the SMTP mailer.
// Every send is best-effort: failures are logged and never surface to the
// moderation flow. With SMTP unconfigured the mailer is disabled and sends
// are skipped entirely.
type EmailNotifier struct {
	mailer  *mailer.Mailer
	baseURL string // public site base, for listing/calendar links
	log     *zap.Logger
}

// NewEmailNotifier creates a notifier backed by the given mailer.
func NewEmailNotifier(m *mailer.Mailer, baseURL string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		mailer:  m,
		baseURL: baseURL,
		log:     log,
	}
}

var _ Notifier = (*EmailNotifier)(nil)

// BusinessApproved notifies the submitter that their listing is live.
func (n *EmailNotifier) BusinessApproved(ctx context.Context, sub models.BusinessSubmission, listing models.BusinessListing) {
	if !n.mailer.Enabled() || sub.ContactEmail == "" {
		return
	}

	textBody, htmlBody := mailer.SubmissionApprovedEmail(mailer.SubmissionApprovedEmailData{
		AppName:      n.mailer.FromName(),
		ContactName:  sub.ContactName,
		BusinessName: sub.BusinessName,
		ListingURL:   n.baseURL + "/businesses/" + listing.Slug,
	})
	n.send(sub.ContactEmail, "Your listing has been approved", textBody, htmlBody)
}

// BusinessRejected notifies the submitter that their submission was declined.
func (n *EmailNotifier) BusinessRejected(ctx context.Context, sub models.BusinessSubmission, reason string) {
	if !n.mailer.Enabled() || sub.ContactEmail == "" {
		return
	}

	textBody, htmlBody := mailer.SubmissionRejectedEmail(mailer.SubmissionRejectedEmailData{
		AppName:      n.mailer.FromName(),
		ContactName:  sub.ContactName,
		BusinessName: sub.BusinessName,
		Reason:       reason,
	})
	n.send(sub.ContactEmail, "About your directory submission", textBody, htmlBody)
}

// EventDecision notifies the submitter of an event approval or rejection.
func (n *EmailNotifier) EventDecision(ctx context.Context, sub models.EventSubmission, approved bool, reason string) {
	if !n.mailer.Enabled() || sub.ContactEmail == "" {
		return
	}

	subject := "Your event is on the calendar"
	if !approved {
		subject = "About your event submission"
	}
	textBody, htmlBody := mailer.EventDecisionEmail(mailer.EventDecisionEmailData{
		AppName:     n.mailer.FromName(),
		ContactName: sub.ContactName,
		EventTitle:  sub.Title,
		Approved:    approved,
		Reason:      reason,
		CalendarURL: n.baseURL + "/events",
	})
	n.send(sub.ContactEmail, subject, textBody, htmlBody)
}

func (n *EmailNotifier) send(to, subject, textBody, htmlBody string) {
	if err := n.mailer.Send(mailer.Email{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}); err != nil {
		n.log.Warn("notification email failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
	}
}
