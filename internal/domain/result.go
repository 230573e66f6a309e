package domain

const successMessage = "Success"

// SendResult is the normalized outcome of a single delivery attempt. It is
// only built through SendSuccess and SendFailure.
type SendResult struct {
	success      bool
	message      string
	channelName  string
	providerName string
	messageID    string
}

func SendSuccess(channel Channel, providerName string, messageID string) SendResult {
	return SendResult{
		success:      true,
		message:      successMessage,
		channelName:  channel.String(),
		providerName: providerName,
		messageID:    messageID,
	}
}

func SendFailure(channel Channel, providerName string, reason string) SendResult {
	return SendResult{
		message:      reason,
		channelName:  channel.String(),
		providerName: providerName,
	}
}

func (r SendResult) Success() bool        { return r.success }
func (r SendResult) Message() string      { return r.message }
func (r SendResult) ChannelName() string  { return r.channelName }
func (r SendResult) ProviderName() string { return r.providerName }

// MessageID returns the provider-side identifier; it is absent on failure.
func (r SendResult) MessageID() (string, bool) {
	if !r.success || r.messageID == "" {
		return "", false
	}
	return r.messageID, true
}
