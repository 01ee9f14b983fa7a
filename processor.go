package textcodec

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// tagEscape marks a field for escaping: `escape:"true"`.
const tagEscape = "escape"

func init() {
	sentinel.Tag(tagEscape)
}

// errNoSerializer is the cause reported when Marshal or Unmarshal runs
// without a serializer.
var errNoSerializer = errors.New("no serializer configured")

// Processor escapes tagged string fields of T and serializes the result.
// Use Escape/Marshal on egress and Unescape/Unmarshal on ingress.
//
// Fields are selected with `escape:"true"`. Supported field kinds are
// string, []byte, []string and map[K]string, including fields of nested
// structs and pointers to structs.
//
// Processors are safe for concurrent use. SetCodec and SetSerializer may be
// called at any time.
type Processor[T Cloner[T]] struct {
	mu         sync.RWMutex
	codec      *Codec
	serializer Serializer

	// Immutable after construction
	fields   []fieldPlan
	typeName string
}

// fieldPlan describes how to reach and transform a single field.
type fieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // dotted field name
	isBytes    bool   // []byte field
	isSlice    bool   // []string field
	isMap      bool   // map[K]string field
	ptrIndices []int  // positions in index where a pointer must be dereferenced
}

// typePlans is the cached scan result for one type.
type typePlans struct {
	typeName string
	fields   []fieldPlan
}

var plansCache sync.Map // reflect.Type -> *typePlans

// NewProcessor creates a Processor for T.
//
// The serializer may be nil when only Escape and Unescape are used.
// A tag value that is not a boolean fails with ErrInvalidTag.
func NewProcessor[T Cloner[T]](c *Codec, s Serializer) (*Processor[T], error) {
	if c == nil {
		return nil, newInputError("new processor")
	}

	plans, err := getOrBuildPlans[T]()
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		codec:      c,
		serializer: s,
		fields:     plans.fields,
		typeName:   plans.typeName,
	}

	emitProcessorCreated(context.Background(), p.contentType(), plans.typeName)
	return p, nil
}

// SetCodec replaces the codec.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetCodec(c *Codec) *Processor[T] {
	if c == nil {
		return p
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codec = c
	return p
}

// SetSerializer replaces the serializer.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetSerializer(s Serializer) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.serializer = s
	return p
}

// Fields returns the dotted names of the fields the processor transforms.
func (p *Processor[T]) Fields() []string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.name
	}
	return names
}

// Escape returns a clone of obj with tagged fields encoded.
func (p *Processor[T]) Escape(ctx context.Context, obj *T) (*T, error) {
	start := time.Now()
	var retErr error
	defer func() {
		emitComplete(ctx, SignalEscapeComplete, p.contentType(), p.typeName,
			0, time.Since(start), len(p.fields), retErr)
	}()

	if obj == nil {
		retErr = newInputError("escape")
		return nil, retErr
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	p.apply(&clone, p.codec.Encode)
	return &clone, nil
}

// Unescape returns a clone of obj with tagged fields decoded.
func (p *Processor[T]) Unescape(ctx context.Context, obj *T) (*T, error) {
	start := time.Now()
	var retErr error
	defer func() {
		emitComplete(ctx, SignalUnescapeComplete, p.contentType(), p.typeName,
			0, time.Since(start), len(p.fields), retErr)
	}()

	if obj == nil {
		retErr = newInputError("unescape")
		return nil, retErr
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	p.apply(&clone, p.codec.Decode)
	return &clone, nil
}

// Marshal encodes tagged fields of a clone of obj and serializes it.
func (p *Processor[T]) Marshal(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()
	var retErr error
	var retData []byte
	defer func() {
		emitComplete(ctx, SignalMarshalComplete, p.contentType(), p.typeName,
			len(retData), time.Since(start), len(p.fields), retErr)
	}()

	if obj == nil {
		retErr = newInputError("marshal")
		return nil, retErr
	}

	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.serializer == nil {
		retErr = newSerializerError(ErrMarshal, errNoSerializer)
		return nil, retErr
	}

	p.apply(&clone, p.codec.Encode)

	data, err := p.serializer.Marshal(&clone)
	if err != nil {
		retErr = newSerializerError(ErrMarshal, err)
		return nil, retErr
	}
	retData = data
	return retData, nil
}

// Unmarshal deserializes data and decodes tagged fields.
func (p *Processor[T]) Unmarshal(ctx context.Context, data []byte) (*T, error) {
	start := time.Now()
	var retErr error
	defer func() {
		emitComplete(ctx, SignalUnmarshalComplete, p.contentType(), p.typeName,
			len(data), time.Since(start), len(p.fields), retErr)
	}()

	if data == nil {
		retErr = newInputError("unmarshal")
		return nil, retErr
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.serializer == nil {
		retErr = newSerializerError(ErrUnmarshal, errNoSerializer)
		return nil, retErr
	}

	var obj T
	if err := p.serializer.Unmarshal(data, &obj); err != nil {
		retErr = newSerializerError(ErrUnmarshal, err)
		return nil, retErr
	}

	p.apply(&obj, p.codec.Decode)
	return &obj, nil
}

// contentType returns the serializer content type, or "" without one.
func (p *Processor[T]) contentType() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.serializer == nil {
		return ""
	}
	return p.serializer.ContentType()
}

// apply runs fn over every planned field of obj.
func (p *Processor[T]) apply(obj *T, fn func(string) string) {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.fields {
		field, ok := getField(rv, plan)
		if !ok {
			continue
		}

		// Handle slice of strings
		if plan.isSlice {
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if elem.CanSet() {
					elem.SetString(fn(elem.String()))
				}
			}
			continue
		}

		// Handle map of strings
		if plan.isMap {
			elemType := field.Type().Elem()
			iter := field.MapRange()
			for iter.Next() {
				k, v := iter.Key(), iter.Value()
				field.SetMapIndex(k, reflect.ValueOf(fn(v.String())).Convert(elemType))
			}
			continue
		}

		// Handle scalar string or []byte
		if !field.CanSet() {
			continue
		}

		if plan.isBytes {
			if field.IsNil() {
				continue
			}
			field.SetBytes([]byte(fn(string(field.Bytes()))))
			continue
		}
		field.SetString(fn(field.String()))
	}
}

// getField navigates a field path, dereferencing pointers as needed.
// Returns false when a pointer on the path is nil.
func getField(rv reflect.Value, plan fieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	current := rv
	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}

// getOrBuildPlans returns cached field plans for T.
func getOrBuildPlans[T Cloner[T]]() (*typePlans, error) {
	typ := reflect.TypeFor[T]()
	if cached, ok := plansCache.Load(typ); ok {
		return cached.(*typePlans), nil
	}

	plans, err := buildPlans[T]()
	if err != nil {
		return nil, err
	}

	actual, _ := plansCache.LoadOrStore(typ, plans)
	return actual.(*typePlans), nil
}

// buildPlans creates field plans for T by scanning struct tags.
func buildPlans[T Cloner[T]]() (*typePlans, error) {
	spec := sentinel.Scan[T]()
	plans := &typePlans{typeName: spec.TypeName}

	if err := buildPlansRecursive(plans, spec, nil, nil, "", map[reflect.Type]bool{}); err != nil {
		return nil, err
	}
	return plans, nil
}

// buildPlansRecursive walks fields and nested structs. seen guards against
// self-referential pointer types.
func buildPlansRecursive(plans *typePlans, spec sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string, seen map[reflect.Type]bool) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			if nested := scanNestedType(field.ReflectType); nested != nil && !seen[field.ReflectType] {
				seen[field.ReflectType] = true
				if err := buildPlansRecursive(plans, *nested, fullIndex, ptrIndices, fullName, seen); err != nil {
					return err
				}
				delete(seen, field.ReflectType)
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			elem := field.ReflectType.Elem()
			if nested := scanNestedType(elem); nested != nil && !seen[elem] {
				seen[elem] = true
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildPlansRecursive(plans, *nested, fullIndex, newPtrIndices, fullName, seen); err != nil {
					return err
				}
				delete(seen, elem)
			}
			continue
		}

		val, ok := field.Tags[tagEscape]
		if !ok {
			continue
		}
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return newConfigError(ErrInvalidTag, fullName, val)
		}
		if !enabled {
			continue
		}

		rt := field.ReflectType
		isString := rt.Kind() == reflect.String
		isBytes := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8
		isStringSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isStringMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String

		if !isString && !isBytes && !isStringSlice && !isStringMap {
			return newConfigError(ErrInvalidTag, fullName, rt.String())
		}

		plans.fields = append(plans.fields, fieldPlan{
			index:      fullIndex,
			name:       fullName,
			isBytes:    isBytes,
			isSlice:    isStringSlice,
			isMap:      isStringMap,
			ptrIndices: ptrIndices,
		})
	}

	return nil
}

// scanNestedType returns metadata for a nested struct type.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if val, ok := sf.Tag.Lookup(tagEscape); ok {
			fm.Tags[tagEscape] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}
