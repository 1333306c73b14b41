package events

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSPublisher is a minimal interface for publishing messages to SNS.
type SNSPublisher interface {
	Publish(ctx context.Context, topicArn string, message []byte) error
}

// SNSClient publishes raw messages to SNS topics.
type SNSClient struct {
	client *sns.Client
}

// LoadAWSConfig loads the default AWS configuration from the environment.
func LoadAWSConfig(ctx context.Context) (sdkaws.Config, error) {
	return config.LoadDefaultConfig(ctx)
}

// NewSNSClient creates an SNSClient from an AWS config.
func NewSNSClient(cfg sdkaws.Config) *SNSClient {
	return &SNSClient{client: sns.NewFromConfig(cfg)}
}

// Publish publishes a raw message to the given SNS topic ARN.
func (s *SNSClient) Publish(ctx context.Context, topicArn string, message []byte) error {
	if topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}
	msg := string(message)
	input := &sns.PublishInput{
		TopicArn: &topicArn,
		Message:  &msg,
	}
	if _, err := s.client.Publish(ctx, input); err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", topicArn, err)
	}
	return nil
}
