package mailer

import (
	"bytes"
	"html/template"
)

// SubmissionApprovedEmailData contains the data for a business submission
// approval notification.
type SubmissionApprovedEmailData struct {
	AppName      string
	ContactName  string
	BusinessName string
	ListingURL   string
}

// SubmissionApprovedEmail generates both plain text and HTML versions of a
// business submission approval notification.
func SubmissionApprovedEmail(data SubmissionApprovedEmailData) (textBody, htmlBody string) {
	textBody = "Hello " + data.ContactName + ",\n\n" +
		"Good news: your submission for \"" + data.BusinessName + "\" has been approved " +
		"and is now listed in the " + data.AppName + " directory.\n\n" +
		"View the listing here:\n" + data.ListingURL + "\n\n" +
		"Thank you for helping keep the guide current."

	var buf bytes.Buffer
	submissionApprovedHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// SubmissionRejectedEmailData contains the data for a business submission
// rejection notification.
type SubmissionRejectedEmailData struct {
	AppName      string
	ContactName  string
	BusinessName string
	Reason       string
	ContactEmail string
}

// SubmissionRejectedEmail generates both plain text and HTML versions of a
// business submission rejection notification.
func SubmissionRejectedEmail(data SubmissionRejectedEmailData) (textBody, htmlBody string) {
	textBody = "Hello " + data.ContactName + ",\n\n" +
		"Your submission for \"" + data.BusinessName + "\" was not approved for the " +
		data.AppName + " directory.\n\n"
	if data.Reason != "" {
		textBody += "Reason: " + data.Reason + "\n\n"
	}
	textBody += "If you believe this was a mistake, you can reply to this email"
	if data.ContactEmail != "" {
		textBody += " or write to " + data.ContactEmail
	}
	textBody += " and we will take another look."

	var buf bytes.Buffer
	submissionRejectedHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

// EventDecisionEmailData contains the data for a community event moderation
// notification, covering both approval and rejection.
type EventDecisionEmailData struct {
	AppName     string
	ContactName string
	EventTitle  string
	Approved    bool
	Reason      string
	CalendarURL string
}

// EventDecisionEmail generates both plain text and HTML versions of a
// community event moderation notification.
func EventDecisionEmail(data EventDecisionEmailData) (textBody, htmlBody string) {
	if data.Approved {
		textBody = "Hello " + data.ContactName + ",\n\n" +
			"Your event \"" + data.EventTitle + "\" has been approved and now appears on the " +
			data.AppName + " community calendar.\n\n" +
			"See it here:\n" + data.CalendarURL
	} else {
		textBody = "Hello " + data.ContactName + ",\n\n" +
			"Your event \"" + data.EventTitle + "\" was not approved for the " +
			data.AppName + " community calendar.\n\n"
		if data.Reason != "" {
			textBody += "Reason: " + data.Reason + "\n\n"
		}
		textBody += "You are welcome to revise the details and submit again."
	}

	var buf bytes.Buffer
	eventDecisionHTMLTmpl.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}

var submissionApprovedHTMLTmpl = template.Must(template.New("submission_approved").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Submission Approved</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">Your Listing Is Live</h2>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Hello {{.ContactName}}, your submission for <strong>{{.BusinessName}}</strong> has been approved and is now in the directory.
              </p>
              <!-- Button -->
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 8px 0 24px 0;">
                    <a href="{{.ListingURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">View Listing</a>
                  </td>
                </tr>
              </table>
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                Thank you for helping keep the guide current.
              </p>
            </td>
          </tr>
          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #fafafa; border-top: 1px solid #e4e4e7; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #4f46e5; text-align: center; word-break: break-all;">
                {{.ListingURL}}
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var submissionRejectedHTMLTmpl = template.Must(template.New("submission_rejected").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Submission Update</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">About Your Submission</h2>
              <p style="margin: 0 0 16px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Hello {{.ContactName}}, your submission for <strong>{{.BusinessName}}</strong> was not approved for the directory.
              </p>
              {{if .Reason}}
              <p style="margin: 0 0 16px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                <strong>Reason:</strong> {{.Reason}}
              </p>
              {{end}}
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                If you believe this was a mistake, reply to this email{{if .ContactEmail}} or write to {{.ContactEmail}}{{end}} and we will take another look.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))

var eventDecisionHTMLTmpl = template.Must(template.New("event_decision").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Event Submission Update</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f4f4f5;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f4f4f5;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px 32px; text-align: center; border-bottom: 1px solid #e4e4e7;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #18181b;">{{.AppName}}</h1>
            </td>
          </tr>
          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              {{if .Approved}}
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">Your Event Is On The Calendar</h2>
              <p style="margin: 0 0 24px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Hello {{.ContactName}}, your event <strong>{{.EventTitle}}</strong> has been approved and now appears on the community calendar.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 8px 0 24px 0;">
                    <a href="{{.CalendarURL}}" style="display: inline-block; padding: 14px 32px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600; border-radius: 6px;">View Calendar</a>
                  </td>
                </tr>
              </table>
              {{else}}
              <h2 style="margin: 0 0 16px 0; font-size: 20px; font-weight: 600; color: #18181b;">About Your Event</h2>
              <p style="margin: 0 0 16px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                Hello {{.ContactName}}, your event <strong>{{.EventTitle}}</strong> was not approved for the community calendar.
              </p>
              {{if .Reason}}
              <p style="margin: 0 0 16px 0; font-size: 15px; line-height: 1.6; color: #52525b;">
                <strong>Reason:</strong> {{.Reason}}
              </p>
              {{end}}
              <p style="margin: 0; font-size: 14px; line-height: 1.6; color: #71717a;">
                You are welcome to revise the details and submit again.
              </p>
              {{end}}
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`))
