package notify

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/Abhisheksharma004/tour-management-mca-final-year-project/pkg/events"
)

var bookingTmpl = template.Must(template.New("booking").Funcs(template.FuncMap{
	"rupees": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
}).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f97316;">{{.Heading}}</h2>
  <p>Dear {{.Recipient}},</p>
  <p>{{.Intro}}</p>
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #1f2937; margin-top: 0;">Booking Details</h3>
    <p><strong>Tour:</strong> {{.Ev.TourTitle}}</p>
    <p><strong>Guide:</strong> {{.Ev.GuideName}}</p>
    <p><strong>Traveler:</strong> {{.Ev.TravelerName}}</p>
    <p><strong>Date:</strong> {{.Ev.Date.Format "Monday, 2 January 2006"}}</p>
    <p><strong>Number of Participants:</strong> {{.Ev.Participants}}</p>
    <p><strong>Total Price:</strong> {{rupees .Ev.TotalPrice}}</p>
  </div>
  {{if .Outro}}<p>{{.Outro}}</p>{{end}}
  <p>Best regards,<br>The Find Best Guide Team</p>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb; font-size: 12px; color: #6b7280;">
    <p>This is an automated email. Please do not reply directly to this message.</p>
  </div>
</div>`))

type letter struct {
	To        string
	Subject   string
	Heading   string
	Recipient string
	Intro     string
	Outro     string
	Ev        events.BookingEvent
}

// Render builds the emails for one booking event. Unknown keys yield no messages.
func Render(key string, ev events.BookingEvent) ([]Message, error) {
	var letters []letter
	switch key {
	case events.RKBookingCreated:
		letters = append(letters, letter{
			To:        ev.TravelerEmail,
			Subject:   "Booking Confirmation - " + ev.TourTitle,
			Heading:   "Tour Booking Confirmation",
			Recipient: ev.TravelerName,
			Intro:     "Thank you for booking a tour with " + ev.GuideName + "!",
			Outro:     "Your booking is currently pending confirmation from the guide. You will receive another email once the guide confirms your booking.",
			Ev:        ev,
		})
		if ev.GuideEmail != "" {
			letters = append(letters, letter{
				To:        ev.GuideEmail,
				Subject:   "New Booking Request - " + ev.TourTitle,
				Heading:   "New Booking Request",
				Recipient: ev.GuideName,
				Intro:     ev.TravelerName + " has requested to book your tour.",
				Outro:     "Please confirm or decline this booking from your guide dashboard.",
				Ev:        ev,
			})
		}
	case events.RKBookingConfirmed:
		letters = append(letters, travelerLetter(ev, "Booking Confirmed - ", "Your Booking is Confirmed",
			ev.GuideName+" has confirmed your booking.", "We hope you enjoy the tour."))
	case events.RKBookingCancelled:
		outro := ""
		if ev.PaymentStatus == "refunded" {
			outro = "Your payment has been refunded."
		}
		letters = append(letters, travelerLetter(ev, "Booking Cancelled - ", "Booking Cancelled",
			"Your booking has been cancelled.", outro))
	case events.RKBookingCompleted:
		letters = append(letters, travelerLetter(ev, "Tour Completed - ", "Thank You for Travelling",
			"Your tour with "+ev.GuideName+" is complete.", "We would love to hear how it went."))
	case events.RKBookingPaid:
		letters = append(letters, travelerLetter(ev, "Payment Received - ", "Payment Received",
			"We have received your payment.", ""))
	default:
		return nil, nil
	}

	out := make([]Message, 0, len(letters))
	for _, l := range letters {
		var buf bytes.Buffer
		if err := bookingTmpl.Execute(&buf, l); err != nil {
			return nil, fmt.Errorf("render %s: %w", key, err)
		}
		out = append(out, Message{To: l.To, Subject: l.Subject, HTML: buf.String()})
	}
	return out, nil
}

func travelerLetter(ev events.BookingEvent, subjectPrefix, heading, intro, outro string) letter {
	return letter{
		To:        ev.TravelerEmail,
		Subject:   subjectPrefix + ev.TourTitle,
		Heading:   heading,
		Recipient: ev.TravelerName,
		Intro:     intro,
		Outro:     outro,
		Ev:        ev,
	}
}
