package service

import (
	"bytes"
	"html/template"
	"time"

	"github.com/az-solve/shop-support/internal/domain"
)

// Email rendering is pure: a ticket snapshot in, an HTML body out, no I/O.
// Delivery concerns live entirely in the mailer and worker.

const submittedOnLayout = "Jan 02, 2006 15:04"

var customerConfirmationTmpl = template.Must(template.New("customer_confirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2c3e50;">Thank You for Contacting {{.StoreName}} Support</h2>
        <p>Dear {{.CustomerName}},</p>
        <p>We have received your support request and will get back to you as soon as possible.</p>

        <div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #10b981; margin: 20px 0;">
            <p style="margin: 0;"><strong>Ticket ID:</strong> #{{.TicketID}}</p>
            <p style="margin: 10px 0 0 0;"><strong>Submitted:</strong> {{.SubmittedOn}} UTC</p>
        </div>

        <p><strong>Your Message:</strong></p>
        <div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 10px 0;">
            <p style="margin: 0; white-space: pre-wrap;">{{.Message}}</p>
        </div>

        <p>Our support team typically responds within 24-48 hours during business days.</p>

        <p style="margin-top: 30px;">Best regards,<br/>
        <strong>{{.StoreName}} Customer Service Team</strong></p>

        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;"/>
        <p style="font-size: 12px; color: #6b7280;">
            This is an automated message. Please do not reply to this email.
            If you need further assistance, please submit a new ticket or contact us at {{.TeamInbox}}.
        </p>
    </div>
</body>
</html>`))

var supportAlertTmpl = template.Must(template.New("support_alert").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">New Support Ticket Received</h2>

        <div style="background-color: #fef2f2; padding: 15px; border-left: 4px solid #dc2626; margin: 20px 0;">
            <p style="margin: 0;"><strong>Ticket ID:</strong> #{{.TicketID}}</p>
            <p style="margin: 10px 0 0 0;"><strong>Status:</strong> {{.Status}}</p>
            <p style="margin: 10px 0 0 0;"><strong>Submitted:</strong> {{.SubmittedOn}} UTC</p>
        </div>

        <p><strong>Customer Information:</strong></p>
        <ul>
            <li><strong>Name:</strong> {{.CustomerName}}</li>
            <li><strong>Email:</strong> <a href="mailto:{{.CustomerEmail}}">{{.CustomerEmail}}</a></li>
        </ul>

        <p><strong>Message:</strong></p>
        <div style="background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 10px 0;">
            <p style="margin: 0; white-space: pre-wrap;">{{.Message}}</p>
        </div>

        <p style="margin-top: 30px;">
            <a href="{{.AdminURL}}"
               style="display: inline-block; padding: 10px 20px; background-color: #10b981; color: white;
                      text-decoration: none; border-radius: 5px;">View Ticket in Dashboard</a>
        </p>

        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;"/>
        <p style="font-size: 12px; color: #6b7280;">
            {{.StoreName}} Support System - Automated Notification
        </p>
    </div>
</body>
</html>`))

type customerConfirmationData struct {
	StoreName    string
	CustomerName string
	TicketID     string
	SubmittedOn  string
	Message      string
	TeamInbox    string
}

type supportAlertData struct {
	StoreName     string
	TicketID      string
	Status        string
	SubmittedOn   string
	CustomerName  string
	CustomerEmail string
	Message       string
	AdminURL      string
}

// RenderCustomerConfirmation produces the confirmation body sent to the customer.
func RenderCustomerConfirmation(ticket domain.SupportTicket, storeName, teamInbox string) string {
	var buf bytes.Buffer
	_ = customerConfirmationTmpl.Execute(&buf, customerConfirmationData{
		StoreName:    storeName,
		CustomerName: ticket.CustomerName,
		TicketID:     ticket.ID,
		SubmittedOn:  formatSubmittedOn(ticket.SubmittedOn),
		Message:      ticket.Message,
		TeamInbox:    teamInbox,
	})
	return buf.String()
}

// RenderSupportAlert produces the internal alert body sent to the support inbox.
func RenderSupportAlert(ticket domain.SupportTicket, storeName, adminBaseURL string) string {
	var buf bytes.Buffer
	_ = supportAlertTmpl.Execute(&buf, supportAlertData{
		StoreName:     storeName,
		TicketID:      ticket.ID,
		Status:        ticket.Status.Display(),
		SubmittedOn:   formatSubmittedOn(ticket.SubmittedOn),
		CustomerName:  ticket.CustomerName,
		CustomerEmail: ticket.CustomerEmail,
		Message:       ticket.Message,
		AdminURL:      adminBaseURL + "/admin/tickets/" + ticket.ID,
	})
	return buf.String()
}

func formatSubmittedOn(t time.Time) string {
	return t.UTC().Format(submittedOnLayout)
}
