package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"docqa-be/internal/entity"
	"docqa-be/internal/pkg/serverutils"
	"docqa-be/pkg/extract"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentServiceForTest(store *memoryStore, extractor *countingExtractor) IDocumentService {
	return NewDocumentService(
		&fakeFactory{store: store},
		extractor,
		gocache.New(time.Minute, time.Minute),
		nopLogger{},
	)
}

func TestUploadStoresNewDocument(t *testing.T) {
	store := newMemoryStore()
	extractor := &countingExtractor{text: "extracted body"}
	svc := newDocumentServiceForTest(store, extractor)

	document, err := svc.Upload(context.Background(), []byte("pdf bytes"), "report.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, "report.pdf", document.FileName)
	assert.Equal(t, "extracted body", document.ExtractedText)
	assert.Equal(t, int64(len("pdf bytes")), document.SizeBytes)
	assert.Len(t, document.ContentHash, 64)
	assert.Equal(t, 1, extractor.hits)
	assert.Len(t, store.documents, 1)
}

func TestUploadDeduplicatesIdenticalContent(t *testing.T) {
	store := newMemoryStore()
	extractor := &countingExtractor{text: "extracted body"}
	svc := newDocumentServiceForTest(store, extractor)

	first, err := svc.Upload(context.Background(), []byte("same bytes"), "a.pdf", "application/pdf")
	require.NoError(t, err)

	// Same content under a different name still resolves to the same record.
	second, err := svc.Upload(context.Background(), []byte("same bytes"), "b.pdf", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 1, extractor.hits, "text must be extracted exactly once per distinct content")
	assert.Len(t, store.documents, 1)
	assert.True(t, second.UpdatedAt.After(first.UploadedAt), "duplicate upload must refresh UpdatedAt")
}

func TestUploadDistinctContentGetsDistinctDocuments(t *testing.T) {
	store := newMemoryStore()
	extractor := &countingExtractor{text: "extracted body"}
	svc := newDocumentServiceForTest(store, extractor)

	first, err := svc.Upload(context.Background(), []byte("content one"), "a.pdf", "application/pdf")
	require.NoError(t, err)
	second, err := svc.Upload(context.Background(), []byte("content two"), "a.pdf", "application/pdf")
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, 2, extractor.hits)
	assert.Len(t, store.documents, 2)
}

func TestUploadRejectsUnparseableDocument(t *testing.T) {
	store := newMemoryStore()
	extractor := &countingExtractor{err: extract.ErrUnsupportedDocument}
	svc := newDocumentServiceForTest(store, extractor)

	_, err := svc.Upload(context.Background(), []byte("not a pdf"), "bad.pdf", "application/pdf")

	require.Error(t, err)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.ErrCategoryUnsupportedDocument, appErr.Category)
	assert.Empty(t, store.documents, "failed extraction must not leave a document behind")
}

func TestUploadConcurrentDuplicatesDoNotShareRecords(t *testing.T) {
	store := newMemoryStore()
	extractor := &countingExtractor{text: "extracted body"}
	svc := newDocumentServiceForTest(store, extractor)

	// Warm the cache so every concurrent upload below takes the hot path.
	seed, err := svc.Upload(context.Background(), []byte("hot bytes"), "seed.pdf", "application/pdf")
	require.NoError(t, err)

	const uploads = 8
	results := make([]*entity.Document, uploads)
	var wg sync.WaitGroup
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			document, err := svc.Upload(context.Background(), []byte("hot bytes"), "dup.pdf", "application/pdf")
			assert.NoError(t, err)
			results[i] = document
		}(i)
	}
	wg.Wait()

	for i, document := range results {
		require.NotNil(t, document)
		assert.Equal(t, seed.Id, document.Id)
		for j := i + 1; j < uploads; j++ {
			assert.NotSame(t, document, results[j],
				"each dedupe hit must get its own record, never a shared struct")
		}
	}
	assert.Equal(t, 1, extractor.hits)
	assert.Len(t, store.documents, 1)
}

func TestUploadAdoptsWinnerOnInsertRace(t *testing.T) {
	store := newMemoryStore()
	extractor := &countingExtractor{text: "extracted body"}
	svc := newDocumentServiceForTest(store, extractor)

	// Seed the winner as if a concurrent upload committed first, then make
	// the initial hash lookup miss so this upload goes down the insert path
	// and hits the unique-index conflict.
	winner, err := svc.Upload(context.Background(), []byte("raced bytes"), "winner.pdf", "application/pdf")
	require.NoError(t, err)

	store.mu.Lock()
	store.missFirstDocumentFind = true
	store.mu.Unlock()

	svc2 := newDocumentServiceForTest(store, extractor) // fresh cache, forces the store lookup
	loser, err := svc2.Upload(context.Background(), []byte("raced bytes"), "loser.pdf", "application/pdf")

	require.NoError(t, err)
	assert.Equal(t, winner.Id, loser.Id, "losing insert must adopt the winner's record")
	assert.Len(t, store.documents, 1)
}
