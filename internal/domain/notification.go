package domain

import "strings"

// Notification is one of EmailNotification, SMSNotification,
// PushNotification or SlackNotification. The unexported method keeps the set
// closed so senders can match on the concrete variant exhaustively.
type Notification interface {
	Channel() Channel
	Validate() ValidationResult
	notification()
}

var (
	_ Notification = EmailNotification{}
	_ Notification = SMSNotification{}
	_ Notification = PushNotification{}
	_ Notification = SlackNotification{}
)

// --- Email ---

type EmailNotification struct {
	to          string
	subject     string
	body        string
	from        string
	attachments []string
	cc          []string
	bcc         []string
}

type EmailOption func(*EmailNotification)

func WithFrom(from string) EmailOption {
	return func(n *EmailNotification) { n.from = from }
}

// WithAttachments appends attachment file paths, keeping their order.
func WithAttachments(paths ...string) EmailOption {
	return func(n *EmailNotification) { n.attachments = append(n.attachments, paths...) }
}

func WithCC(addresses ...string) EmailOption {
	return func(n *EmailNotification) { n.cc = append(n.cc, addresses...) }
}

func WithBCC(addresses ...string) EmailOption {
	return func(n *EmailNotification) { n.bcc = append(n.bcc, addresses...) }
}

func NewEmail(to, subject, body string, opts ...EmailOption) EmailNotification {
	n := EmailNotification{
		to:          to,
		subject:     subject,
		body:        body,
		attachments: []string{},
		cc:          []string{},
		bcc:         []string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&n)
		}
	}
	return n
}

func (n EmailNotification) To() string            { return n.to }
func (n EmailNotification) Subject() string       { return n.subject }
func (n EmailNotification) Body() string          { return n.body }
func (n EmailNotification) From() string          { return n.from }
func (n EmailNotification) Attachments() []string { return cloneStrings(n.attachments) }
func (n EmailNotification) CC() []string          { return cloneStrings(n.cc) }
func (n EmailNotification) BCC() []string         { return cloneStrings(n.bcc) }

func (EmailNotification) Channel() Channel { return ChannelEmail }
func (EmailNotification) notification()    {}

func (n EmailNotification) Validate() ValidationResult {
	if isBlank(n.to) || !strings.Contains(n.to, "@") {
		return ValidationFailure("Invalid recipient email: " + n.to)
	}
	if isBlank(n.subject) {
		return ValidationFailure("Email subject cannot be empty")
	}
	if isBlank(n.body) {
		return ValidationFailure("Email body cannot be empty")
	}
	return ValidationSuccess()
}

// --- SMS ---

type SMSNotification struct {
	phoneNumber string
	message     string
}

func NewSMS(phoneNumber, message string) SMSNotification {
	return SMSNotification{phoneNumber: phoneNumber, message: message}
}

func (n SMSNotification) PhoneNumber() string { return n.phoneNumber }
func (n SMSNotification) Message() string     { return n.message }

func (SMSNotification) Channel() Channel { return ChannelSMS }
func (SMSNotification) notification()    {}

func (n SMSNotification) Validate() ValidationResult {
	if isBlank(n.phoneNumber) {
		return ValidationFailure("Phone number cannot be empty")
	}
	if isBlank(n.message) {
		return ValidationFailure("SMS message cannot be empty")
	}
	return ValidationSuccess()
}

// --- Push ---

type PushNotification struct {
	token string
	title string
	body  string
	data  map[string]string
}

type PushOption func(*PushNotification)

// WithData merges key/value pairs into the push data payload.
func WithData(data map[string]string) PushOption {
	return func(n *PushNotification) {
		for k, v := range data {
			n.data[k] = v
		}
	}
}

func NewPush(token, title, body string, opts ...PushOption) PushNotification {
	n := PushNotification{
		token: token,
		title: title,
		body:  body,
		data:  map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&n)
		}
	}
	return n
}

func (n PushNotification) Token() string { return n.token }
func (n PushNotification) Title() string { return n.title }
func (n PushNotification) Body() string  { return n.body }

func (n PushNotification) Data() map[string]string {
	out := make(map[string]string, len(n.data))
	for k, v := range n.data {
		out[k] = v
	}
	return out
}

func (PushNotification) Channel() Channel { return ChannelPush }
func (PushNotification) notification()    {}

func (n PushNotification) Validate() ValidationResult {
	if isBlank(n.token) {
		return ValidationFailure("Push token cannot be empty")
	}
	if isBlank(n.title) {
		return ValidationFailure("Push title cannot be empty")
	}
	if isBlank(n.body) {
		return ValidationFailure("Push body cannot be empty")
	}
	return ValidationSuccess()
}

// --- Slack ---

type SlackNotification struct {
	channel   string
	text      string
	username  string
	iconEmoji string
}

type SlackOption func(*SlackNotification)

func WithUsername(username string) SlackOption {
	return func(n *SlackNotification) { n.username = username }
}

func WithIconEmoji(icon string) SlackOption {
	return func(n *SlackNotification) { n.iconEmoji = icon }
}

// NewSlack builds a chat message for the given channel identifier, e.g. "#general".
func NewSlack(channel, text string, opts ...SlackOption) SlackNotification {
	n := SlackNotification{channel: channel, text: text}
	for _, opt := range opts {
		if opt != nil {
			opt(&n)
		}
	}
	return n
}

func (n SlackNotification) SlackChannel() string { return n.channel }
func (n SlackNotification) Text() string         { return n.text }
func (n SlackNotification) Username() string     { return n.username }
func (n SlackNotification) IconEmoji() string    { return n.iconEmoji }

func (SlackNotification) Channel() Channel { return ChannelSlack }
func (SlackNotification) notification()    {}

func (n SlackNotification) Validate() ValidationResult {
	if isBlank(n.channel) {
		return ValidationFailure("Slack channel cannot be empty")
	}
	if isBlank(n.text) {
		return ValidationFailure("Slack message text cannot be empty")
	}
	return ValidationSuccess()
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
