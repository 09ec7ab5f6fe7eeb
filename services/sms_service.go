// services/sms_service.go
package services

import (
	"errors"
	"strings"

	"bookline-backend/config"
	"bookline-backend/models"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrSMSNotConfigured = errors.New("twilio credentials not configured")

// SMSService sends outbound texts through Twilio. Numbers in E.164
// format (leading +) go out over WhatsApp, everything else as plain
// SMS.
type SMSService struct {
	client       *twilio.RestClient
	phoneNumber  string
	whatsappFrom string
	logger       zerolog.Logger
}

func NewSMSService(cfg *config.Config, logger zerolog.Logger) *SMSService {
	s := &SMSService{
		phoneNumber:  cfg.TwilioPhoneNumber,
		whatsappFrom: cfg.TwilioWhatsAppNumber,
		logger:       logger,
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return s
}

// Enabled reports whether credentials were supplied.
func (s *SMSService) Enabled() bool {
	return s.client != nil
}

// Send delivers body to the given phone number and returns the channel
// used.
func (s *SMSService) Send(to, body string) (string, error) {
	if s.client == nil {
		return models.ChannelSMS, ErrSMSNotConfigured
	}

	channel := models.ChannelSMS
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	if strings.HasPrefix(to, "+") {
		channel = models.ChannelWhatsApp
		params.SetTo("whatsapp:" + to)
		params.SetFrom("whatsapp:" + s.whatsappFrom)
	} else {
		params.SetTo(to)
		params.SetFrom(s.phoneNumber)
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("twilio send failed")
		return channel, err
	}
	if resp.Sid != nil {
		s.logger.Info().Str("to", to).Str("sid", *resp.Sid).Msg("message sent")
	} else {
		s.logger.Info().Str("to", to).Msg("message sent, no SID returned")
	}
	return channel, nil
}
