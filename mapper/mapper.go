/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/suparena/entitymapper/codec"
	"github.com/suparena/entitymapper/converter"
	"github.com/suparena/entitymapper/entity"
	"github.com/suparena/entitymapper/errors"
)

// Mapper converts structs to entity builders and entities back to structs.
// It is safe for concurrent use.
type Mapper struct {
	codec           codec.Codec
	logger          *slog.Logger
	strictNarrowing bool
	schemas         *schemaCache
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithCodec sets the codec used for the JSON strategies.
func WithCodec(c codec.Codec) Option {
	return func(m *Mapper) {
		m.codec = c
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mapper) {
		m.logger = l
	}
}

// WithStrictNarrowing leaves an integer field at its default, with an error
// diagnostic, when the stored Int64 does not fit. Without it the value is
// truncated and a warning diagnostic is reported.
func WithStrictNarrowing() Option {
	return func(m *Mapper) {
		m.strictNarrowing = true
	}
}

// New creates a Mapper.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		codec:   codec.Default,
		logger:  slog.Default(),
		schemas: newSchemaCache(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ForLogger returns a Mapper that shares m's configuration and schema cache
// but logs to l.
func (m *Mapper) ForLogger(l *slog.Logger) *Mapper {
	c := *m
	c.logger = l
	return &c
}

func (m *Mapper) schema(t reflect.Type) *schema {
	s, built := m.schemas.schemaFor(t)
	if built {
		for goName, opts := range s.unknownOptions {
			m.logger.Warn("unknown entity tag options",
				slog.String("type", t.String()),
				slog.String("field", goName),
				slog.Any("options", opts))
		}
		for _, name := range s.conflicts {
			m.logger.Warn("ambiguous entity property dropped",
				slog.String("type", t.String()),
				slog.String("property", name))
		}
	}
	return s
}

// ToEntityBuilder builds the entity for obj, a struct or pointer to struct.
//
// A non-null id yields a complete key seeded with it. A nil *int64 id and
// an id of zero are null. A null id yields an
// incomplete key when isInsert is set and a MissingIDError otherwise. Every
// other property is written under its name: null values as explicit Null,
// the rest through the field's strategy. Fields that cannot be converted are
// left out of the builder and reported in the returned Diagnostics.
func (m *Mapper) ToEntityBuilder(kf *entity.KeyFactory, obj any, isInsert bool) (*entity.Builder, Diagnostics, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil, errors.NewValidationError("obj", "nil object")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, nil, errors.NewValidationError("obj", fmt.Sprintf("%T is not a struct", obj))
	}

	s := m.schema(rv.Type())
	var diags Diagnostics

	var key entity.Key
	id, ok := m.readID(s, rv, &diags)
	switch {
	case ok:
		key = kf.NewKey(id)
	case isInsert:
		key = kf.NewIncompleteKey()
	default:
		return nil, diags, errors.NewMissingIDError(kf.Kind())
	}

	b := entity.NewBuilder(key)
	for _, f := range s.fields {
		if f.getMarkers.Has(IgnoreOnWrite) {
			continue
		}
		m.writeField(b, f, rv, &diags)
	}

	m.report(rv.Type(), diags)
	return b, diags, nil
}

func (m *Mapper) readID(s *schema, rv reflect.Value, diags *Diagnostics) (int64, bool) {
	if s.id == nil {
		return 0, false
	}
	if !s.idValid {
		diags.add(s.id, DirectionWrite, StrategyUnsupported, SeverityError,
			errors.NewUnsupportedTypeError(s.id.name, s.id.typ.String(), "id must be int64 or *int64"))
		return 0, false
	}
	fv := rv.FieldByIndex(s.id.index)
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return 0, false
		}
		fv = fv.Elem()
	}
	// zero is null for both int64 and *int64
	id := fv.Int()
	return id, id != 0
}

func (m *Mapper) writeField(b *entity.Builder, f *field, obj reflect.Value, diags *Diagnostics) {
	defer func() {
		if r := recover(); r != nil {
			diags.add(f, DirectionWrite, f.write, SeverityError,
				errors.NewReflectionAccessError(f.name, "get", fmt.Errorf("%v", r)))
		}
	}()

	fv := obj.FieldByIndex(f.index)
	if isNull(fv) {
		b.SetNull(f.name)
		return
	}
	if fv.Kind() == reflect.Pointer {
		fv = fv.Elem()
	}

	v, err := m.encode(f, fv)
	if err != nil {
		diags.add(f, DirectionWrite, f.write, SeverityError, err)
		return
	}
	b.Set(f.name, v)
}

func isNull(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return fv.IsNil()
	}
	return false
}

func (m *Mapper) encode(f *field, fv reflect.Value) (entity.Value, error) {
	switch f.write {
	case StrategyScalar, StrategyWiden, StrategyTimestamp:
		return converter.ScalarToValue(fv)
	case StrategyNativeList:
		vals, err := converter.ListToValues(fv)
		if err != nil {
			return entity.Value{}, err
		}
		if vals == nil {
			return entity.NullValue(), nil
		}
		return entity.ListValue(vals...), nil
	case StrategyListJSON, StrategyListOfEligibleJSON, StrategyMapJSON, StrategyObjectJSON:
		data, err := m.codec.Marshal(fv.Interface())
		if err != nil {
			return entity.Value{}, fmt.Errorf("%s encode: %w", m.codec.Name(), err)
		}
		return entity.StringValue(string(data)), nil
	}
	return entity.Value{}, errors.NewUnsupportedTypeError(f.name, f.typ.String(),
		fmt.Sprintf("no write strategy for markers %s", f.getMarkers))
}

// FromEntity populates dst, a non-nil pointer to a struct, from e.
//
// The id property is taken from the key. Any other property is set only when
// e holds a non-null value for it; absent and Null fields leave dst's value
// untouched. Fields that cannot be converted are reported in the returned
// Diagnostics and left as they were.
func (m *Mapper) FromEntity(e *entity.Entity, dst any) (Diagnostics, error) {
	if e == nil {
		return nil, errors.NewValidationError("entity", "nil entity")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, errors.NewValidationError("dst", fmt.Sprintf("%T is not a non-nil pointer to a struct", dst))
	}
	return m.populate(e, rv.Elem()), nil
}

// NewFromEntity instantiates t (a struct type or pointer to one) and
// populates it from e. It returns a pointer to the new value.
func (m *Mapper) NewFromEntity(t reflect.Type, e *entity.Entity) (any, Diagnostics, error) {
	if t == nil {
		return nil, nil, errors.NewInstantiationError("<nil>", "no type given")
	}
	st := indirect(t)
	if st.Kind() != reflect.Struct {
		return nil, nil, errors.NewInstantiationError(t.String(), "target must be a struct")
	}
	if e == nil {
		return nil, nil, errors.NewValidationError("entity", "nil entity")
	}
	ptr := reflect.New(st)
	return ptr.Interface(), m.populate(e, ptr.Elem()), nil
}

// Decode is NewFromEntity for a static type.
func Decode[T any](m *Mapper, e *entity.Entity) (*T, Diagnostics, error) {
	v, diags, err := m.NewFromEntity(reflect.TypeOf((*T)(nil)).Elem(), e)
	if err != nil {
		return nil, diags, err
	}
	return v.(*T), diags, nil
}

func (m *Mapper) populate(e *entity.Entity, dst reflect.Value) Diagnostics {
	s := m.schema(dst.Type())
	var diags Diagnostics

	if s.id != nil && !s.id.setMarkers.Has(IgnoreOnWrite) {
		m.setID(s, e.Key(), dst, &diags)
	}
	for _, f := range s.fields {
		if f.setMarkers.Has(IgnoreOnWrite) {
			continue
		}
		m.readField(e, f, dst, &diags)
	}

	m.report(dst.Type(), diags)
	return diags
}

func (m *Mapper) setID(s *schema, key entity.Key, dst reflect.Value, diags *Diagnostics) {
	if !s.idValid {
		diags.add(s.id, DirectionRead, StrategyUnsupported, SeverityError,
			errors.NewUnsupportedTypeError(s.id.name, s.id.typ.String(), "id must be int64 or *int64"))
		return
	}
	if !key.IsComplete() {
		return
	}
	fv := dst.FieldByIndex(s.id.index)
	if fv.Kind() == reflect.Pointer {
		id := key.ID()
		fv.Set(reflect.ValueOf(&id).Convert(fv.Type()))
		return
	}
	fv.SetInt(key.ID())
}

func (m *Mapper) readField(e *entity.Entity, f *field, dst reflect.Value, diags *Diagnostics) {
	v, ok := e.Value(f.name)
	if !ok || v.IsNull() {
		return
	}

	strategy := resolveRead(v.Kind(), f.typ, f.setMarkers)
	defer func() {
		if r := recover(); r != nil {
			diags.add(f, DirectionRead, strategy, SeverityError,
				errors.NewReflectionAccessError(f.name, "set", fmt.Errorf("%v", r)))
		}
	}()

	if strategy == StrategyUnsupported {
		diags.add(f, DirectionRead, strategy, SeverityError, errors.NewUnsupportedTypeError(f.name, f.typ.String(),
			fmt.Sprintf("cannot read %s value with markers %s", v.Kind(), f.setMarkers)))
		return
	}

	target := reflect.New(indirect(f.typ)).Elem()
	set, err := m.decode(f, strategy, v, target, diags)
	if err != nil {
		diags.add(f, DirectionRead, strategy, SeverityError, err)
		return
	}
	if !set {
		return
	}

	fv := dst.FieldByIndex(f.index)
	if f.typ.Kind() == reflect.Pointer {
		fv.Set(target.Addr())
		return
	}
	fv.Set(target)
}

// decode writes v into target. It reports false when there is nothing to set.
func (m *Mapper) decode(f *field, strategy Strategy, v entity.Value, target reflect.Value, diags *Diagnostics) (bool, error) {
	switch strategy {
	case StrategyScalar:
		switch target.Kind() {
		case reflect.String:
			s, _ := v.AsString()
			target.SetString(s)
		case reflect.Int64:
			n, _ := v.AsInt64()
			target.SetInt(n)
		case reflect.Bool:
			b, _ := v.AsBoolean()
			target.SetBool(b)
		case reflect.Float64:
			d, _ := v.AsDouble()
			target.SetFloat(d)
		}
		return true, nil

	case StrategyWiden:
		n, _ := v.AsInt64()
		if target.OverflowInt(n) {
			overflow := errors.NewNarrowingOverflowError(f.name, n, target.Type().Bits())
			if m.strictNarrowing {
				return false, overflow
			}
			diags.add(f, DirectionRead, strategy, SeverityWarning, overflow)
		}
		if target.Kind() == reflect.Int32 {
			target.SetInt(int64(*converter.NarrowInt64(&n)))
		} else {
			target.SetInt(n)
		}
		return true, nil

	case StrategyTimestamp:
		return true, converter.SetTimestamp(target, v)

	case StrategyNativeList:
		vals, _ := v.AsList()
		list, err := converter.ValuesToList(vals, target.Type())
		if err != nil {
			return false, err
		}
		if list.IsNil() {
			return false, nil
		}
		target.Set(list)
		return true, nil

	case StrategyListJSON, StrategyListOfEligibleJSON, StrategyMapJSON, StrategyObjectJSON:
		s, _ := v.AsString()
		if err := m.codec.Unmarshal([]byte(s), target.Addr().Interface()); err != nil {
			return false, fmt.Errorf("%s decode: %w", m.codec.Name(), err)
		}
		return true, nil
	}
	return false, errors.NewUnsupportedTypeError(f.name, f.typ.String(), "no read strategy")
}

func (m *Mapper) report(t reflect.Type, diags Diagnostics) {
	for _, d := range diags {
		level := slog.LevelWarn
		if d.Severity == SeverityWarning {
			level = slog.LevelInfo
		}
		m.logger.Log(context.Background(), level, "entity field conversion",
			slog.String("type", t.String()),
			slog.String("field", d.Field),
			slog.String("direction", d.Direction.String()),
			slog.String("strategy", d.Strategy.String()),
			slog.String("severity", d.Severity.String()),
			slog.Any("err", d.Err))
	}
}
