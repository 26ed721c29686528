package worker

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/memecataloger/catalog-api/config"
	"github.com/memecataloger/catalog-api/infra"
	"github.com/memecataloger/catalog-api/infra/produce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsumer(t *testing.T) (*MediaConsumer, infra.Storage) {
	t.Helper()

	storage, err := infra.NewLocalStorage(t.TempDir(), "http://testserver/media")
	require.NoError(t, err)

	cfg := &config.EnvConfig{}
	inf := &infra.Infra{
		Logger:  infra.InitLoggerClient(cfg),
		Storage: storage,
	}
	return NewMediaConsumer(nil, inf), storage
}

func TestProcessCleanupDeletesBlob(t *testing.T) {
	consumer, storage := newTestConsumer(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "orphan.png", bytes.NewReader([]byte("x")), 1, "image/png"))

	err := consumer.ProcessCleanup(ctx, produce.MediaCleanupMessage{
		ImageID: uuid.New().String(),
		Source:  "orphan.png",
	})
	require.NoError(t, err)

	exists, err := storage.Exists(ctx, "orphan.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProcessCleanupIsIdempotent(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	// a blob that is already gone is a success, redeliveries must not fail
	err := consumer.ProcessCleanup(context.Background(), produce.MediaCleanupMessage{
		ImageID: uuid.New().String(),
		Source:  "already-gone.png",
	})
	assert.NoError(t, err)
}

func TestProcessCleanupRejectsEmptySource(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	err := consumer.ProcessCleanup(context.Background(), produce.MediaCleanupMessage{
		ImageID: uuid.New().String(),
	})
	assert.Error(t, err)
}
