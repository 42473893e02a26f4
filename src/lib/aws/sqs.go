package aws

import (
	"context"
	"log"

	"travelapi/src/lib"
	"travelapi/src/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSConsumer long-polls a single queue and dispatches each message
// body to its handler. Messages are deleted once dispatched; delivery
// failures stay inside the handler.
type SQSConsumer struct {
	Queue   string
	handler types.Handler
}

func NewSQSConsumer(queue string, handler types.Handler) *SQSConsumer {
	return &SQSConsumer{
		Queue:   queue,
		handler: handler,
	}
}

func (s *SQSConsumer) Listen() {
	go func() {
		client := lib.AWSGetSQSClient()
		qurl, err := client.GetQueueUrl(context.TODO(), &sqs.GetQueueUrlInput{
			QueueName: aws.String(s.Queue),
		})
		if err != nil {
			log.Printf("[SQS] Failed to retrieve queue URL for %s: %s\n", s.Queue, err.Error())
			return
		}
		for {
			output, err := client.ReceiveMessage(context.Background(), &sqs.ReceiveMessageInput{
				QueueUrl:            qurl.QueueUrl,
				WaitTimeSeconds:     20,
				MaxNumberOfMessages: 10,
			})
			if err != nil {
				log.Printf("[SQS] Error receiving messages: %s\n", err.Error())
				return
			}
			for _, m := range output.Messages {
				go s.handler(*m.Body)
				go lib.SQSDeleteMessage(client, qurl.QueueUrl, &m)
			}
		}
	}()
}
