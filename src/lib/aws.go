package lib

import (
	"context"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

var sqsClient *sqs.Client

func AWSGetSQSClient() *sqs.Client {
	if sqsClient != nil {
		return sqsClient
	}
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Printf("Error loading default config: %s\n", err.Error())
		return nil
	}
	client := sqs.NewFromConfig(cfg)
	sqsClient = client
	return client
}

// NewSQSClient replaces the SQS client instance. Used by tests.
func NewSQSClient(c *sqs.Client) *sqs.Client {
	sqsClient = c
	return sqsClient
}

func SQSProduceMessage(queue string, body string) error {
	client := AWSGetSQSClient()
	qurl, err := client.GetQueueUrl(context.Background(), &sqs.GetQueueUrlInput{
		QueueName: aws.String(queue),
	})
	if err != nil {
		log.Printf("Failed to retrieve queue URL for %s: %s\n", queue, err.Error())
		return err
	}
	out, err := client.SendMessage(context.Background(), &sqs.SendMessageInput{
		QueueUrl:    qurl.QueueUrl,
		MessageBody: aws.String(body),
	})
	if err != nil {
		log.Printf("Could not send message to queue: %s\n", err.Error())
		return err
	}
	log.Printf("Message sent to queue: %s\n", *out.MessageId)
	return nil
}

func SQSDeleteMessage(c *sqs.Client, qurl *string, msg *sqsTypes.Message) {
	_, err := c.DeleteMessage(context.TODO(), &sqs.DeleteMessageInput{
		QueueUrl:      qurl,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Printf("Error deleting message from queue: %s\n", err.Error())
		return
	}
	log.Printf("Deleted message from queue: %s\n", *msg.MessageId)
}
