/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"strconv"
	"strings"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory Client understanding the expressions Store
// sends.
type fakeClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	// failures holds errors returned, in order, before calls succeed.
	failures []error
	calls    map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		items: make(map[string]map[string]types.AttributeValue),
		calls: make(map[string]int),
	}
}

func (f *fakeClient) failNext(errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, errs...)
}

func (f *fakeClient) begin(op string) error {
	f.calls[op]++
	if len(f.failures) > 0 {
		err := f.failures[0]
		f.failures = f.failures[1:]
		return err
	}
	return nil
}

func keyOf(key map[string]types.AttributeValue) string {
	pk, _ := key["PK"].(*types.AttributeValueMemberS)
	sk, _ := key["SK"].(*types.AttributeValueMemberS)
	if pk == nil || sk == nil {
		return ""
	}
	return pk.Value + "|" + sk.Value
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("GetItem"); err != nil {
		return nil, err
	}
	return &sdk.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("PutItem"); err != nil {
		return nil, err
	}
	k := keyOf(in.Item)
	if in.ConditionExpression != nil {
		_, exists := f.items[k]
		switch *in.ConditionExpression {
		case "attribute_not_exists(PK)":
			if exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
		case "attribute_exists(PK)":
			if !exists {
				return nil, &types.ConditionalCheckFailedException{}
			}
		}
	}
	f.items[k] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteItem"); err != nil {
		return nil, err
	}
	k := keyOf(in.Key)
	if in.ConditionExpression != nil && *in.ConditionExpression == "attribute_exists(PK)" {
		if _, exists := f.items[k]; !exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	delete(f.items, k)
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(ctx context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateItem"); err != nil {
		return nil, err
	}

	// only "ADD #name :value" is supported
	parts := strings.Fields(*in.UpdateExpression)
	attr := in.ExpressionAttributeNames[parts[1]]
	delta, _ := strconv.ParseInt(in.ExpressionAttributeValues[parts[2]].(*types.AttributeValueMemberN).Value, 10, 64)

	k := keyOf(in.Key)
	item, ok := f.items[k]
	if !ok {
		item = map[string]types.AttributeValue{"PK": in.Key["PK"], "SK": in.Key["SK"]}
		f.items[k] = item
	}
	var cur int64
	if n, ok := item[attr].(*types.AttributeValueMemberN); ok {
		cur, _ = strconv.ParseInt(n.Value, 10, 64)
	}
	next := &types.AttributeValueMemberN{Value: strconv.FormatInt(cur+delta, 10)}
	item[attr] = next
	return &sdk.UpdateItemOutput{Attributes: map[string]types.AttributeValue{attr: next}}, nil
}

func (f *fakeClient) Scan(ctx context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("Scan"); err != nil {
		return nil, err
	}

	// only "#name = :value" filters are supported
	var attr string
	var want types.AttributeValue
	if in.FilterExpression != nil {
		parts := strings.Fields(*in.FilterExpression)
		attr = in.ExpressionAttributeNames[parts[0]]
		want = in.ExpressionAttributeValues[parts[2]]
	}

	out := &sdk.ScanOutput{}
	for _, item := range f.items {
		if attr != "" {
			got, ok := item[attr].(*types.AttributeValueMemberS)
			w, _ := want.(*types.AttributeValueMemberS)
			if !ok || w == nil || got.Value != w.Value {
				continue
			}
		}
		out.Count++
		if in.Select != types.SelectCount {
			out.Items = append(out.Items, item)
		}
	}
	out.ScannedCount = int32(len(f.items))
	return out, nil
}
