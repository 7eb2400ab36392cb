package kafka

import (
	"strconv"

	"github.com/niksmo/pricecompare/pkg/schema"
)

// A searchEventCodec used for serde [schema.SearchEventV1]
type searchEventCodec struct {
	serde Serde
}

func newSearchEventCodec(s Serde) searchEventCodec {
	return searchEventCodec{s}
}

func (c searchEventCodec) Encode(v any) ([]byte, error) {
	const op = "searchEventCodec.Encode"
	if _, ok := v.(schema.SearchEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c searchEventCodec) Decode(data []byte) (any, error) {
	const op = "searchEventCodec.Decode"
	var s schema.SearchEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A queryCount is the group table value: searches seen for a query.
type queryCount int64

type queryCountCodec struct{}

func (queryCountCodec) Encode(v any) ([]byte, error) {
	const op = "queryCountCodec.Encode"
	c, ok := v.(queryCount)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt(nil, int64(c), 10), nil
}

func (queryCountCodec) Decode(data []byte) (any, error) {
	const op = "queryCountCodec.Decode"
	c, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return queryCount(c), nil
}
