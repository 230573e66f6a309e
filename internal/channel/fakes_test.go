package channel

import (
	"context"
	"sync/atomic"

	"github.com/kursadbilgin/notification-dispatch/internal/domain"
)

type fakeEmailProvider struct {
	name   string
	sendFn func(ctx context.Context, n domain.EmailNotification) (bool, error)
	calls  atomic.Int32
}

func (p *fakeEmailProvider) Name() string { return p.name }

func (p *fakeEmailProvider) SendEmail(ctx context.Context, n domain.EmailNotification) (bool, error) {
	p.calls.Add(1)
	if p.sendFn == nil {
		return true, nil
	}
	return p.sendFn(ctx, n)
}

type fakeSMSProvider struct {
	name   string
	sendFn func(ctx context.Context, n domain.SMSNotification) (bool, error)
	calls  atomic.Int32
}

func (p *fakeSMSProvider) Name() string { return p.name }

func (p *fakeSMSProvider) SendSMS(ctx context.Context, n domain.SMSNotification) (bool, error) {
	p.calls.Add(1)
	if p.sendFn == nil {
		return true, nil
	}
	return p.sendFn(ctx, n)
}

type fakePushProvider struct {
	name   string
	sendFn func(ctx context.Context, n domain.PushNotification) (bool, error)
	calls  atomic.Int32
}

func (p *fakePushProvider) Name() string { return p.name }

func (p *fakePushProvider) SendPush(ctx context.Context, n domain.PushNotification) (bool, error) {
	p.calls.Add(1)
	if p.sendFn == nil {
		return true, nil
	}
	return p.sendFn(ctx, n)
}

type fakeSlackProvider struct {
	name   string
	sendFn func(ctx context.Context, n domain.SlackNotification) (bool, error)
	calls  atomic.Int32
}

func (p *fakeSlackProvider) Name() string { return p.name }

func (p *fakeSlackProvider) SendSlackMessage(ctx context.Context, n domain.SlackNotification) (bool, error) {
	p.calls.Add(1)
	if p.sendFn == nil {
		return true, nil
	}
	return p.sendFn(ctx, n)
}

func validEmail() domain.EmailNotification {
	return domain.NewEmail("user@example.com", "Welcome!", "Hello")
}

func validSMS() domain.SMSNotification {
	return domain.NewSMS("+19876543210", "Your verification code is 1234")
}

func validPush() domain.PushNotification {
	return domain.NewPush("device_token_xyz", "New Alert", "You have a new message")
}

func validSlack() domain.SlackNotification {
	return domain.NewSlack("#general", "Deployment successful")
}

// senderCase pairs a sender with a counter of provider calls so tests can
// run the same assertions over every channel kind.
type senderCase struct {
	name    string
	sender  Sender
	calls   func() int32
	valid   domain.Notification
	invalid domain.Notification
	variant string
}

func allSenders(outcome func() (bool, error), opts ...Option) []senderCase {
	email := &fakeEmailProvider{name: "SendGrid", sendFn: func(context.Context, domain.EmailNotification) (bool, error) { return outcome() }}
	sms := &fakeSMSProvider{name: "Twilio", sendFn: func(context.Context, domain.SMSNotification) (bool, error) { return outcome() }}
	push := &fakePushProvider{name: "Firebase", sendFn: func(context.Context, domain.PushNotification) (bool, error) { return outcome() }}
	slack := &fakeSlackProvider{name: "Slack", sendFn: func(context.Context, domain.SlackNotification) (bool, error) { return outcome() }}

	return []senderCase{
		{
			name:    "email",
			sender:  NewEmailSender(email, opts...),
			calls:   email.calls.Load,
			valid:   validEmail(),
			invalid: domain.NewEmail("not-an-address", "", ""),
			variant: "EmailNotification",
		},
		{
			name:    "sms",
			sender:  NewSMSSender(sms, opts...),
			calls:   sms.calls.Load,
			valid:   validSMS(),
			invalid: domain.NewSMS("", ""),
			variant: "SMSNotification",
		},
		{
			name:    "push",
			sender:  NewPushSender(push, opts...),
			calls:   push.calls.Load,
			valid:   validPush(),
			invalid: domain.NewPush("", "", ""),
			variant: "PushNotification",
		},
		{
			name:    "slack",
			sender:  NewSlackSender(slack, opts...),
			calls:   slack.calls.Load,
			valid:   validSlack(),
			invalid: domain.NewSlack("", ""),
			variant: "SlackNotification",
		},
	}
}
