package channel

import (
	"github.com/kursadbilgin/notification-dispatch/internal/domain"
	"github.com/kursadbilgin/notification-dispatch/internal/provider"
)

var (
	_ Sender = (*ChannelSender[domain.EmailNotification])(nil)
	_ Sender = (*ChannelSender[domain.SMSNotification])(nil)
	_ Sender = (*ChannelSender[domain.PushNotification])(nil)
	_ Sender = (*ChannelSender[domain.SlackNotification])(nil)
)

var (
	emailSpec = channelSpec[domain.EmailNotification]{
		channel:     domain.ChannelEmail,
		variant:     "EmailNotification",
		noun:        "email",
		destination: domain.EmailNotification.To,
	}
	smsSpec = channelSpec[domain.SMSNotification]{
		channel:     domain.ChannelSMS,
		variant:     "SMSNotification",
		noun:        "SMS",
		destination: domain.SMSNotification.PhoneNumber,
	}
	pushSpec = channelSpec[domain.PushNotification]{
		channel:     domain.ChannelPush,
		variant:     "PushNotification",
		noun:        "Push",
		destination: domain.PushNotification.Token,
	}
	slackSpec = channelSpec[domain.SlackNotification]{
		channel:     domain.ChannelSlack,
		variant:     "SlackNotification",
		noun:        "Slack message",
		destination: domain.SlackNotification.SlackChannel,
	}
)

func NewEmailSender(p provider.EmailProvider, opts ...Option) *ChannelSender[domain.EmailNotification] {
	return newChannelSender(emailSpec, p.Name(), p.SendEmail, opts)
}

func NewSMSSender(p provider.SMSProvider, opts ...Option) *ChannelSender[domain.SMSNotification] {
	return newChannelSender(smsSpec, p.Name(), p.SendSMS, opts)
}

func NewPushSender(p provider.PushProvider, opts ...Option) *ChannelSender[domain.PushNotification] {
	return newChannelSender(pushSpec, p.Name(), p.SendPush, opts)
}

func NewSlackSender(p provider.SlackProvider, opts ...Option) *ChannelSender[domain.SlackNotification] {
	return newChannelSender(slackSpec, p.Name(), p.SendSlackMessage, opts)
}
