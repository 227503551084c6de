package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	apperrors "utsavia/internal/errors"
	"utsavia/internal/service"
)

type StripeWebhookHandler struct {
	StripeSecret   string
	bookingService *service.BookingService
	stripeService  *service.StripeService
	senderService  *service.SenderService
}

func NewStripeWebhookHandler(stripeSecret string, bookingService *service.BookingService,
	stripeService *service.StripeService, senderService *service.SenderService) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		StripeSecret:   stripeSecret,
		bookingService: bookingService,
		stripeService:  stripeService,
		senderService:  senderService,
	}
}

func (h *StripeWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error().Err(err).Msg("error reading webhook body")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, h.StripeSecret)
	if err != nil {
		log.Warn().Err(err).Msg("webhook signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			log.Error().Err(err).Msg("error parsing checkout.session")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if sess.ID == "" {
			log.Warn().Msg("no session ID in checkout.session.completed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		paymentIntentID := ""
		if sess.PaymentIntent != nil {
			paymentIntentID = sess.PaymentIntent.ID
		}
		booking, err := h.bookingService.ConfirmBookingBySessionID(sess.ID, paymentIntentID)
		if err != nil {
			log.Error().Err(err).Str("session_id", sess.ID).Msg("error confirming booking")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		h.senderService.SendBookingSMS(*booking)
		h.senderService.SendBookingEmail(*booking)

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			log.Error().Err(err).Msg("error parsing charge")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
			sessionID, err := h.stripeService.GetSessionIDByPaymentIntentID(charge.PaymentIntent.ID)
			if err != nil {
				log.Warn().Err(err).Str("payment_intent", charge.PaymentIntent.ID).Msg("no session found for refunded charge")
				return
			}
			if err := h.bookingService.MarkBookingRefundedBySessionID(sessionID); err != nil {
				log.Error().Err(err).Str("session_id", sessionID).Msg("error marking booking refunded")
				return
			}
		}

	default:
		log.Debug().Str("type", string(event.Type)).Msg("unhandled stripe event type")
	}

	w.WriteHeader(http.StatusOK)
}

// GetBookingBySessionID lets the confirmation page resolve a checkout
// session back to its booking.
func (h *StripeWebhookHandler) GetBookingBySessionID(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		apperrors.WriteJSON(w, apperrors.ErrValidation("session_id is required"))
		return
	}
	booking, err := h.bookingService.GetBookingBySessionID(sessionID)
	if err != nil {
		apperrors.WriteJSON(w, apperrors.ErrNotFound("booking not found"))
		return
	}
	respondJSON(w, http.StatusOK, booking)
}
