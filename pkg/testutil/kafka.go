package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/kafka"

	pkgkafka "github.com/onboardiq/onboardiq/pkg/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.6.1"

// StartKafka runs a single-broker Kafka with topic auto-creation and returns
// a client config whose consumer group is group. The container is
// terminated when the test finishes.
func StartKafka(ctx context.Context, t *testing.T, group string) pkgkafka.Config {
	t.Helper()

	container, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("onboarding-test"))
	if err != nil {
		t.Fatalf("failed to start kafka container: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("warning: failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	if err != nil {
		t.Fatalf("failed to get kafka brokers: %v", err)
	}
	return pkgkafka.Config{Brokers: brokers, ConsumerGroup: group}
}
