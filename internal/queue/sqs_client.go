package queue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	defaultSQSRegion        = "us-east-1"
	defaultVisibilitySec    = 1200
	receiveWaitTimeSeconds  = 20
	approximateReceiveCount = "ApproximateReceiveCount"
)

// SQSClient sends and receives queue messages via AWS SQS.
type SQSClient struct {
	client     *sqs.Client
	queueURL   string
	visibility int32
}

// NewSQSClient constructs an SQS-backed queue client for the given
// queue URL.
func NewSQSClient(ctx context.Context, queueURL, region string) (*SQSClient, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, fmt.Errorf("queue url is required")
	}
	if strings.TrimSpace(region) == "" {
		region = defaultSQSRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SQSClient{
		client:     sqs.NewFromConfig(cfg),
		queueURL:   queueURL,
		visibility: defaultVisibilitySec,
	}, nil
}

// SetVisibilityTimeout overrides how long received messages stay hidden
// before redelivery. Non-positive values are ignored.
func (s *SQSClient) SetVisibilityTimeout(seconds int32) {
	if seconds > 0 {
		s.visibility = seconds
	}
}

// Send delivers a message to the configured SQS queue.
func (s *SQSClient) Send(ctx context.Context, msg Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode sqs message: %w", err)
	}

	_, err = s.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueURL),
		MessageBody: aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("sqs send message: %w", err)
	}
	return nil
}

// Receive long-polls the queue for up to max messages. Bodies are
// returned undecoded; payload validation is the consumer's job.
func (s *SQSClient) Receive(ctx context.Context, max int32) ([]Delivery, error) {
	if max < 1 {
		max = 1
	}
	if max > 10 {
		max = 10
	}

	out, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(s.queueURL),
		MaxNumberOfMessages: max,
		WaitTimeSeconds:     receiveWaitTimeSeconds,
		VisibilityTimeout:   s.visibility,
		AttributeNames:      []sqstypes.QueueAttributeName{sqstypes.QueueAttributeName(approximateReceiveCount)},
	})
	if err != nil {
		return nil, fmt.Errorf("sqs receive message: %w", err)
	}

	deliveries := make([]Delivery, 0, len(out.Messages))
	for _, raw := range out.Messages {
		if raw.ReceiptHandle == nil {
			continue
		}
		deliveries = append(deliveries, Delivery{
			Body:         aws.ToString(raw.Body),
			Handle:       *raw.ReceiptHandle,
			MessageID:    aws.ToString(raw.MessageId),
			ReceiveCount: receiveCount(raw),
		})
	}
	return deliveries, nil
}

// Ack deletes a received message from the queue.
func (s *SQSClient) Ack(ctx context.Context, handle string) error {
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(s.queueURL),
		ReceiptHandle: aws.String(handle),
	})
	if err != nil {
		return fmt.Errorf("sqs delete message: %w", err)
	}
	return nil
}

func receiveCount(msg sqstypes.Message) int {
	if msg.Attributes == nil {
		return 0
	}
	parsed, err := strconv.Atoi(msg.Attributes[approximateReceiveCount])
	if err != nil {
		return 0
	}
	return parsed
}

var (
	_ Client   = (*SQSClient)(nil)
	_ Consumer = (*SQSClient)(nil)
)
