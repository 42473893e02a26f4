package aws

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// GetSESClient returns the shared SES client. SES only serves the
// deployed mail path; local delivery goes through SMTP instead.
func GetSESClient() *ses.Client {
	if sesClient != nil {
		return sesClient
	}
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("[SES] Could not load AWS config: %s\n", err.Error())
		return nil
	}
	sesClient = ses.NewFromConfig(cfg)
	return sesClient
}

func SESSendMessage(from *string, destination *types.Destination, message *types.Message) {
	c := GetSESClient()
	if c == nil {
		return
	}
	out, err := c.SendEmail(context.TODO(), &ses.SendEmailInput{
		Destination: destination,
		Source:      from,
		Message:     message,
	})
	if err != nil {
		log.Printf("[SES] Error sending email: %s\n", err.Error())
		return
	}
	log.Printf("[SES] Sent email with id: %s\n", *out.MessageId)
}
