/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
)

// Attribute names owned by the store. Entity properties may not use them.
const (
	attrPK         = "PK"
	attrSK         = "SK"
	attrEntityType = "EntityType"
	attrID         = "ID"
	attrFieldKinds = "FieldKinds"
	attrSeq        = "Seq"
)

var reserved = map[string]bool{
	attrPK: true, attrSK: true, attrEntityType: true, attrID: true, attrFieldKinds: true, attrSeq: true,
}

// itemKey is the primary key of an item.
type itemKey struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

// itemMeta holds the store-owned attributes of an entity item.
type itemMeta struct {
	PK         string            `dynamodbav:"PK"`
	SK         string            `dynamodbav:"SK"`
	EntityType string            `dynamodbav:"EntityType"`
	ID         int64             `dynamodbav:"ID"`
	FieldKinds map[string]string `dynamodbav:"FieldKinds"`
}

type sequence struct {
	Seq int64 `dynamodbav:"Seq"`
}

func entityPK(kind string, id int64) string {
	return kind + "#" + strconv.FormatInt(id, 10)
}

func sequencePK(kind string) string {
	return "SEQ#" + kind
}

func marshalKey(pk string) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(itemKey{PK: pk, SK: pk})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return av, nil
}

// marshalEntity converts e, whose key must be complete, to a DynamoDB item.
func marshalEntity(e *entity.Entity) (map[string]types.AttributeValue, error) {
	key := e.Key()
	pk := entityPK(key.Kind(), key.ID())
	meta := itemMeta{
		PK:         pk,
		SK:         pk,
		EntityType: key.Kind(),
		ID:         key.ID(),
		FieldKinds: make(map[string]string, e.Len()),
	}

	fields := make(map[string]types.AttributeValue, e.Len())
	for _, name := range e.Names() {
		if reserved[name] {
			return nil, errors.NewValidationError(name, "property name is reserved by the DynamoDB store")
		}
		v, _ := e.Value(name)
		av, err := valueToAttribute(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		fields[name] = av
		meta.FieldKinds[name] = v.Kind().String()
	}

	item, err := attributevalue.MarshalMap(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	for k, v := range fields {
		item[k] = v
	}
	return item, nil
}

// unmarshalEntity converts an item written by marshalEntity back to an
// entity. Properties are ordered by name.
func unmarshalEntity(item map[string]types.AttributeValue) (*entity.Entity, error) {
	var meta itemMeta
	if err := attributevalue.UnmarshalMap(item, &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	if meta.EntityType == "" {
		return nil, fmt.Errorf("item %q has no %s", meta.PK, attrEntityType)
	}

	names := make([]string, 0, len(meta.FieldKinds))
	values := make(map[string]entity.Value, len(meta.FieldKinds))
	for name, kindName := range meta.FieldKinds {
		kind, ok := entity.ParseKind(kindName)
		if !ok {
			return nil, fmt.Errorf("property %q: unknown kind %q", name, kindName)
		}
		av, ok := item[name]
		if !ok {
			continue
		}
		v, err := attributeToValue(av, kind)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		names = append(names, name)
		values[name] = v
	}
	sort.Strings(names)

	key := entity.NewKeyFactory(meta.EntityType).NewKey(meta.ID)
	return entity.New(key, names, values), nil
}

func valueToAttribute(v entity.Value) (types.AttributeValue, error) {
	switch v.Kind() {
	case entity.KindNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case entity.KindString:
		s, _ := v.AsString()
		return &types.AttributeValueMemberS{Value: s}, nil
	case entity.KindInt64:
		n, _ := v.AsInt64()
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}, nil
	case entity.KindDouble:
		f, _ := v.AsDouble()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%v cannot be stored as a DynamoDB number", f)
		}
		return &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'g', -1, 64)}, nil
	case entity.KindBoolean:
		b, _ := v.AsBoolean()
		return &types.AttributeValueMemberBOOL{Value: b}, nil
	case entity.KindTimestamp:
		t, _ := v.AsTimestamp()
		return &types.AttributeValueMemberS{Value: t.Format(time.RFC3339Nano)}, nil
	case entity.KindList:
		vals, _ := v.AsList()
		l := make([]types.AttributeValue, len(vals))
		for i, ev := range vals {
			av, err := valueToAttribute(ev)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			l[i] = av
		}
		return &types.AttributeValueMemberL{Value: l}, nil
	}
	return nil, fmt.Errorf("unknown value kind %s", v.Kind())
}

// attributeToValue converts av to a value of the given kind. List elements
// carry no kind of their own; they are inferred from the attribute type, N
// being Int64 unless it has a fraction or exponent.
func attributeToValue(av types.AttributeValue, kind entity.Kind) (entity.Value, error) {
	if _, ok := av.(*types.AttributeValueMemberNULL); ok {
		return entity.NullValue(), nil
	}

	switch kind {
	case entity.KindNull:
		return entity.NullValue(), nil
	case entity.KindString:
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			return entity.StringValue(s.Value), nil
		}
	case entity.KindInt64:
		if n, ok := av.(*types.AttributeValueMemberN); ok {
			i, err := strconv.ParseInt(n.Value, 10, 64)
			if err != nil {
				return entity.Value{}, fmt.Errorf("invalid Int64 %q: %w", n.Value, err)
			}
			return entity.Int64Value(i), nil
		}
	case entity.KindDouble:
		if n, ok := av.(*types.AttributeValueMemberN); ok {
			f, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return entity.Value{}, fmt.Errorf("invalid Double %q: %w", n.Value, err)
			}
			return entity.DoubleValue(f), nil
		}
	case entity.KindBoolean:
		if b, ok := av.(*types.AttributeValueMemberBOOL); ok {
			return entity.BooleanValue(b.Value), nil
		}
	case entity.KindTimestamp:
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			t, err := time.Parse(time.RFC3339Nano, s.Value)
			if err != nil {
				return entity.Value{}, fmt.Errorf("invalid Timestamp %q: %w", s.Value, err)
			}
			return entity.TimestampValue(t), nil
		}
	case entity.KindList:
		if l, ok := av.(*types.AttributeValueMemberL); ok {
			vals := make([]entity.Value, len(l.Value))
			for i, el := range l.Value {
				v, err := attributeToValue(el, inferKind(el))
				if err != nil {
					return entity.Value{}, fmt.Errorf("element %d: %w", i, err)
				}
				vals[i] = v
			}
			return entity.ListValue(vals...), nil
		}
	}
	return entity.Value{}, fmt.Errorf("attribute %T does not hold a %s", av, kind)
}

func inferKind(av types.AttributeValue) entity.Kind {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return entity.KindString
	case *types.AttributeValueMemberN:
		if strings.ContainsAny(tv.Value, ".eE") {
			return entity.KindDouble
		}
		return entity.KindInt64
	case *types.AttributeValueMemberBOOL:
		return entity.KindBoolean
	case *types.AttributeValueMemberL:
		return entity.KindList
	}
	return entity.KindNull
}
