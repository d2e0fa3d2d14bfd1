package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/pkg/errors"
)

// Dynamo stores one item per document, keyed by the document id in "PK".
type Dynamo struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamo(endpoint, region, table string) (*Dynamo, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewDynamoWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoWithClient(client dynamodbiface.DynamoDBAPI, table string) *Dynamo {
	return &Dynamo{client: client, table: table}
}

func (d *Dynamo) Put(ctx context.Context, doc Document) error {
	if doc.ID == "" {
		return errors.New("document id is empty")
	}
	_, err := d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      toItem(doc),
	})
	return errors.Wrap(err, "error from DynamoDB")
}

func (d *Dynamo) Get(ctx context.Context, id string) (Document, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       key(id),
	})
	if err != nil {
		return Document{}, errors.Wrap(err, "error from DynamoDB")
	}
	if out.Item == nil {
		return Document{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return fromItem(out.Item), nil
}

func (d *Dynamo) GetMany(ctx context.Context, ids []string) (map[string]Document, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	res := make(map[string]Document)
	if len(ids) == 0 {
		return res, nil
	}

	var keys []map[string]*dynamodb.AttributeValue
	seen := make(map[string]bool)
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			keys = append(keys, key(id))
		}
	}

	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			d.table: {Keys: keys},
		},
	}
	// repeat until DynamoDB reports no UnprocessedKeys
	for len(input.RequestItems) > 0 {
		out, err := d.client.BatchGetItemWithContext(ctx, input)
		if err != nil {
			return nil, errors.Wrap(err, "error from DynamoDB")
		}
		for _, item := range out.Responses[d.table] {
			doc := fromItem(item)
			res[doc.ID] = doc
		}
		input = &dynamodb.BatchGetItemInput{RequestItems: out.UnprocessedKeys}
	}
	return res, nil
}

func key(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(id)},
	}
}

func toItem(doc Document) map[string]*dynamodb.AttributeValue {
	item := key(doc.ID)
	item["Source"] = &dynamodb.AttributeValue{S: aws.String(doc.Source)}
	item["CreatedAt"] = &dynamodb.AttributeValue{S: aws.String(doc.CreatedAt.UTC().Format(time.RFC3339Nano))}
	// empty strings are omitted
	if doc.Title != "" {
		item["Title"] = &dynamodb.AttributeValue{S: aws.String(doc.Title)}
	}
	if doc.Composer != "" {
		item["Composer"] = &dynamodb.AttributeValue{S: aws.String(doc.Composer)}
	}
	return item
}

func str(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v != nil && v.S != nil {
		return *v.S
	}
	return ""
}

func fromItem(item map[string]*dynamodb.AttributeValue) Document {
	doc := Document{
		ID:       str(item, "PK"),
		Title:    str(item, "Title"),
		Composer: str(item, "Composer"),
		Source:   str(item, "Source"),
	}
	if t, err := time.Parse(time.RFC3339Nano, str(item, "CreatedAt")); err == nil {
		doc.CreatedAt = t
	}
	return doc
}
