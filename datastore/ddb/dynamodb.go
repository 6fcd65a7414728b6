/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	factoryconfig "github.com/suparena/entityfactory/config"
	factoryerrors "github.com/suparena/entityfactory/errors"
	"github.com/suparena/entityfactory/hydrator"
	"github.com/suparena/entityfactory/registry"
)

// Client is the subset of the DynamoDB API the datastore uses. *sdk.Client
// satisfies it.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[T] by using AWS DynamoDB as the underlying data store.
// Entities are stored as their flattened field document plus the attributes of
// the index map registered for T, so unexported fields survive a round trip.
type DynamodbDataStore[T any] struct {
	client    Client
	tableName string
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills each index map template with the matching attributes of
// av. Macros naming a missing or non-scalar attribute expand to "".
func expandMacros(indexMap map[string]string, av map[string]types.AttributeValue) map[string]string {
	res := make(map[string]string, len(indexMap))

	for fieldName, template := range indexMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			// macro is something like "{ID}"
			key := strings.Trim(macro, "{}")

			val, ok := av[key]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				// NULL, binary, sets, lists and maps have no key form
				return ""
			}
		})
		res[fieldName] = expanded
	}

	return res
}

// NewDynamoDBClient initializes a DynamoDB client using AWS credentials.
// An empty endpoint uses the regional AWS endpoint.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint string) (*sdk.Client, error) {
	// Load the custom AWS configuration using static credentials
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return client, nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T.
func NewDynamodbDataStore[T any](awsAccessKey, awsSecretKey, awsRegion, awsDDBTableName string) (*DynamodbDataStore[T], error) {
	return newDataStore[T](context.Background(), factoryconfig.DynamoDB{
		AccessKey: awsAccessKey,
		SecretKey: awsSecretKey,
		Region:    awsRegion,
		Table:     awsDDBTableName,
	})
}

// NewDynamodbDataStoreFromConfig constructs a DynamodbDataStore for type T from
// the ddb section of a factory config.
func NewDynamodbDataStoreFromConfig[T any](ctx context.Context, cfg factoryconfig.DynamoDB) (*DynamodbDataStore[T], error) {
	if !cfg.Enabled() {
		return nil, factoryerrors.NewValidationError("table", "no DynamoDB table configured")
	}
	return newDataStore[T](ctx, cfg)
}

// NewDynamodbDataStoreWithClient wraps an existing client.
func NewDynamodbDataStoreWithClient[T any](client Client, tableName string) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
	}
}

func newDataStore[T any](ctx context.Context, cfg factoryconfig.DynamoDB) (*DynamodbDataStore[T], error) {
	client, err := NewDynamoDBClient(ctx, cfg.AccessKey, cfg.SecretKey, cfg.Region, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"table":  cfg.Table,
		"region": cfg.Region,
		"entity": entityName[T](),
	}).Debug("ddb: client initialized")

	return NewDynamodbDataStoreWithClient[T](client, cfg.Table), nil
}

// GetOne retrieves a single item from DynamoDB using a string key.
// It returns a NotFoundError when no item matches.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	indexMap, err := indexMapOf[T]()
	if err != nil {
		return nil, err
	}

	// Build the DynamoDB key.
	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, factoryerrors.NewNotFoundError(entityName[T](), key)
	}

	var doc map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	for attr := range indexMap {
		delete(doc, attr)
	}

	return hydrator.New[T](doc)
}

// Put stores the given 'entity' in the underlying data store using macros in 'indexMap'
// to populate partition/sort keys (and possibly GSIs).
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	item, err := d.marshalItem(entity)
	if err != nil {
		return err
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes an item from DynamoDB using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	indexMap, err := indexMapOf[T]()
	if err != nil {
		return err
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("delete condition failed: %w", err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// marshalItem flattens entity and adds the expanded index attributes.
func (d *DynamodbDataStore[T]) marshalItem(entity T) (map[string]types.AttributeValue, error) {
	indexMap, err := indexMapOf[T]()
	if err != nil {
		return nil, err
	}

	doc, err := hydrator.Flatten(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to flatten entity: %w", err)
	}

	av, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}

	// Insert the expanded fields as PK, SK, etc.
	for k, v := range expandMacros(indexMap, av) {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	return av, nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It assumes that the expanded map has valid non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// expandStringKey replaces every macro in the index map templates with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

func indexMapOf[T any]() (map[string]string, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %s", factoryerrors.ErrNoIndexMap, entityName[T]())
	}
	return indexMap, nil
}

func entityName[T any]() string {
	return reflect.TypeFor[T]().String()
}
