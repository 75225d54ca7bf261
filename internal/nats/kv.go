package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// CacheBucket is the key-value bucket holding cached collections.
const CacheBucket = "chanforum_cache"

// SetupBucket creates or updates the key-value bucket named bucket. Only the
// latest revision of each key is kept.
func SetupBucket(ctx context.Context, js jetstream.JetStream, bucket string) (jetstream.KeyValue, error) {
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "chanforum collection cache",
		History:     1,
		Storage:     jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("setup bucket %s: %w", bucket, err)
	}
	return kv, nil
}
