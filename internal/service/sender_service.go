package service

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"utsavia/internal/entities"
	"utsavia/internal/utils"
)

// SenderService builds and dispatches customer notifications. Sends are
// fired asynchronously and never fail the booking flow.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(booking entities.BookingResponse) {
	status := statusLabel(booking.Status)
	emailData := entities.BookingEmailData{
		CustomerName:       booking.CustomerName,
		BookingCode:        booking.Code,
		ThemeName:          booking.ThemeName,
		OccasionLabel:      occasionLabel(booking.Occasion),
		EventDateFormatted: formatEventDate(booking.EventDate),
		WindowFormatted:    fmt.Sprintf("%s – %s", booking.StartTime, booking.EndTime),
		City:               booking.City,
		TokenFormatted:     utils.FormatINR(booking.TokenAmount),
		TotalFormatted:     utils.FormatINR(booking.TotalAmount),
		Status:             status,
		CurrentYear:        time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your Utsavia booking is %s - Code: %s", status, booking.Code)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour decoration booking with Utsavia is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Occasion: %s\n"+
			"Date: %s\n"+
			"Setup Window: %s\n"+
			"City: %s\n"+
			"Token Paid: %s\n"+
			"Total: %s\n\n"+
			"Thank you for choosing Utsavia.\n\n"+
			"Utsavia. All rights reserved.",
		emailData.CustomerName, status, emailData.BookingCode, emailData.OccasionLabel,
		emailData.EventDateFormatted, emailData.WindowFormatted, emailData.City,
		emailData.TokenFormatted, emailData.TotalFormatted,
	)

	htmlBody := plainTextBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Warn().Err(err).Str("path", tmplPath).Msg("could not parse booking email template, falling back to plain text")
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			log.Warn().Err(err).Str("code", booking.Code).Msg("could not render booking email template")
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBodyContent string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBodyContent); err != nil {
			log.Error().Err(err).Str("code", emailData.BookingCode).Msg("booking email send failed")
		}
	}(booking.CustomerEmail, booking.CustomerName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendBookingSMS(booking entities.BookingResponse) {
	status := statusLabel(booking.Status)
	smsMessage := fmt.Sprintf("Utsavia: Booking %s is %s!\nSetup: %s, %s.\nDetails in your email.",
		booking.Code, status, formatEventDate(booking.EventDate), booking.StartTime)

	go func(phone, body, code string) {
		if err := SendSMS(phone, body); err != nil {
			log.Error().Err(err).Str("code", code).Msg("booking SMS send failed")
		}
	}(booking.CustomerPhone, smsMessage, booking.Code)
}

func statusLabel(status string) string {
	switch status {
	case StatusInProgress:
		return "in progress"
	default:
		return status
	}
}

func occasionLabel(occasion entities.Occasion) string {
	label := strings.ReplaceAll(strings.ToLower(string(occasion)), "_", " ")
	if label == "" {
		return "celebration"
	}
	return label
}

func formatEventDate(date string) string {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return parsed.Format("02 Jan 2006")
}
