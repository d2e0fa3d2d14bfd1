package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/lilyscore/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	s := model.NewScore()
	s.SetHeader(model.HeaderTitle, "Minuet")
	s.SetHeader(model.HeaderComposer, "Petzold")

	a := NewDocument(s, `\version "2.24.0"`)
	b := NewDocument(s, `\version "2.24.0"`)

	assert := assert.New(t)
	assert.NotEmpty(a.ID)
	assert.NotEqual(a.ID, b.ID)
	assert.Equal("Minuet", a.Title)
	assert.Equal("Petzold", a.Composer)
	assert.False(a.CreatedAt.IsZero())
}

func TestMemoryPutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	doc := Document{ID: "abc", Source: "{ c4 }"}
	require.NoError(t, m.Put(ctx, doc))

	got, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = m.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.Error(t, m.Put(ctx, Document{}))
}

func TestMemoryGetMany(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, m.Put(ctx, Document{ID: id}))
	}

	got, err := m.GetMany(ctx, []string{"a", "c", "zzz"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "a")
	assert.Contains(t, got, "c")

	tooMany := make([]string, 101)
	_, err = m.GetMany(ctx, tooMany)
	assert.Error(t, err)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("doc-%d", i)
			assert.NoError(t, m.Put(ctx, Document{ID: id}))
			_, err := m.Get(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = fmt.Sprintf("doc-%d", i)
	}
	got, err := m.GetMany(ctx, ids)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items       map[string]map[string]*dynamodb.AttributeValue
	unprocessed int
	batchCalls  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

// BatchGetItemWithContext leaves the first f.unprocessed keys unprocessed
// on the first call.
func (f *fakeDynamo) BatchGetItemWithContext(_ aws.Context, in *dynamodb.BatchGetItemInput, _ ...request.Option) (*dynamodb.BatchGetItemOutput, error) {
	f.batchCalls++
	out := &dynamodb.BatchGetItemOutput{
		Responses:       map[string][]map[string]*dynamodb.AttributeValue{},
		UnprocessedKeys: map[string]*dynamodb.KeysAndAttributes{},
	}
	for table, ka := range in.RequestItems {
		var skipped []map[string]*dynamodb.AttributeValue
		for i, k := range ka.Keys {
			if f.batchCalls == 1 && i < f.unprocessed {
				skipped = append(skipped, k)
				continue
			}
			if item, ok := f.items[*k["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
		if len(skipped) > 0 {
			out.UnprocessedKeys[table] = &dynamodb.KeysAndAttributes{Keys: skipped}
		}
	}
	return out, nil
}

func TestDynamoPutGet(t *testing.T) {
	ctx := context.Background()
	d := NewDynamoWithClient(newFakeDynamo(), "docs")
	doc := Document{
		ID:        "abc",
		Title:     "Minuet",
		Source:    "{ c4 }",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, d.Put(ctx, doc))

	got, err := d.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = d.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoGetManyRetriesUnprocessed(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo()
	fake.unprocessed = 2
	d := NewDynamoWithClient(fake, "docs")
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Put(ctx, Document{ID: id, Source: id}))
	}

	got, err := d.GetMany(ctx, []string{"a", "b", "c", "a", "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "b", got["b"].Source)
	assert.Equal(t, 2, fake.batchCalls)
}

func TestItemOmitsEmptyStrings(t *testing.T) {
	item := toItem(Document{ID: "x", Source: "s"})
	assert.NotContains(t, item, "Title")
	assert.NotContains(t, item, "Composer")
	assert.Equal(t, "x", fromItem(item).ID)
}
