package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"decision-backend/internal/queue"
	"decision-backend/internal/shared/config"
	"decision-backend/internal/shared/telemetry"
)

const (
	sqsRegion                 = "us-east-1"
	defaultVisibilitySeconds  = 60
	defaultConcurrency        = 4
	defaultShutdownTimeoutSec = 30
)

func main() {
	config.Load()

	queueURL := strings.TrimSpace(os.Getenv("DR_SQS_QUEUE_URL"))
	if queueURL == "" {
		log.Fatal("DR_SQS_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	visibilitySeconds := envInt("DR_SQS_VISIBILITY_TIMEOUT_SECONDS", defaultVisibilitySeconds)
	concurrency := envInt("DR_NOTIFIER_CONCURRENCY", defaultConcurrency)
	shutdownTimeout := time.Duration(envInt("DR_SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSec)) * time.Second

	region := strings.TrimSpace(os.Getenv("AWS_REGION"))
	if region == "" {
		region = sqsRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}
	var sqsClient sqsAPI = sqs.NewFromConfig(awsCfg)

	sem := make(chan struct{}, max(1, concurrency))
	var wg sync.WaitGroup

	log.Printf("notifier started queue=%s concurrency=%d visibility=%ds", queueURL, concurrency, visibilitySeconds)

pollLoop:
	for {
		select {
		case <-ctx.Done():
			break pollLoop
		default:
		}

		resp, err := sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
			VisibilityTimeout:   int32(visibilitySeconds),
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break pollLoop
			}
			log.Printf("receive message: %v", err)
			continue
		}

		for _, msg := range resp.Messages {
			select {
			case <-ctx.Done():
				break pollLoop
			case sem <- struct{}{}:
			}
			wg.Add(1)
			go func(m sqstypes.Message) {
				defer wg.Done()
				defer func() { <-sem }()
				handleMessage(ctx, sqsClient, queueURL, m)
			}(msg)
		}
	}

	log.Printf("shutdown requested, waiting up to %s for in-flight notifications", shutdownTimeout)
	waitDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(shutdownTimeout):
		log.Printf("shutdown timeout reached; exiting with in-flight notifications")
	}
}

// handleMessage renders the notification and deletes the message. Actual email
// delivery is not wired yet; the rendered notification is logged instead.
func handleMessage(ctx context.Context, client sqsAPI, queueURL string, m sqstypes.Message) {
	body := ""
	if m.Body != nil {
		body = *m.Body
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		telemetry.Error("failed to decode notification message", map[string]any{
			"err": err.Error(),
		})
		deleteMessage(ctx, client, queueURL, m)
		return
	}

	telemetry.Info("recommendation notification", map[string]any{
		"decisionId":       msg.DecisionID,
		"recommendationId": msg.RecommendationID,
		"option":           msg.RecommendedOptionText,
		"confidence":       msg.ConfidenceScore,
		"explanation":      msg.Explanation,
	})

	deleteMessage(ctx, client, queueURL, m)
}

func deleteMessage(ctx context.Context, client sqsAPI, queueURL string, m sqstypes.Message) {
	if m.ReceiptHandle == nil {
		return
	}
	_, err := client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: m.ReceiptHandle,
	})
	if err != nil {
		log.Printf("delete message: %v", err)
	}
}

type sqsAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("env %s invalid int: %v", key, err)
		return def
	}
	return val
}
