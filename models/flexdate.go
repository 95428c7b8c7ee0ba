package models

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// DateKind tags the stored representation of an event date. Client writes
// over the years left three shapes in the collection: an epoch-seconds
// object, a free-form date string, and nothing at all.
type DateKind int

const (
	DateNone DateKind = iota
	DateString
	DateSeconds
)

// FlexDate holds one event date field in whichever shape it was stored.
// Parsing of the string form is deferred to Millis so that malformed
// strings keep their original feed behavior (excluded from every
// date-bounded view) instead of failing the whole document decode.
type FlexDate struct {
	Kind    DateKind
	Str     string
	Seconds int64
}

// DateState classifies the outcome of normalizing a FlexDate.
type DateState int

const (
	DateAbsent DateState = iota
	DateMalformed
	DateKnown
)

// Layouts the string form is tried against, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Millis resolves the stored value to epoch milliseconds.
func (d FlexDate) Millis() (int64, DateState) {
	switch d.Kind {
	case DateSeconds:
		return d.Seconds * 1000, DateKnown
	case DateString:
		if d.Str == "" {
			return 0, DateAbsent
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d.Str); err == nil {
				return t.UnixMilli(), DateKnown
			}
		}
		return 0, DateMalformed
	default:
		return 0, DateAbsent
	}
}

// IsZero reports whether no date was stored.
func (d FlexDate) IsZero() bool {
	return d.Kind == DateNone || (d.Kind == DateString && d.Str == "")
}

func NewFlexDate(s string) FlexDate {
	if s == "" {
		return FlexDate{}
	}
	return FlexDate{Kind: DateString, Str: s}
}

func FlexDateFromSeconds(s int64) FlexDate {
	return FlexDate{Kind: DateSeconds, Seconds: s}
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DateSeconds:
		return json.Marshal(map[string]int64{"seconds": d.Seconds})
	case DateString:
		return json.Marshal(d.Str)
	default:
		return []byte("null"), nil
	}
}

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = FlexDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = NewFlexDate(s)
		return nil
	}
	var obj struct {
		Seconds *int64 `json:"seconds"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Seconds != nil {
		*d = FlexDateFromSeconds(*obj.Seconds)
		return nil
	}
	return fmt.Errorf("flexdate: unsupported date value %s", data)
}

func (d FlexDate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch d.Kind {
	case DateSeconds:
		doc, err := bson.Marshal(bson.M{"seconds": d.Seconds})
		if err != nil {
			return 0, nil, err
		}
		return bsontype.EmbeddedDocument, doc, nil
	case DateString:
		return bsontype.String, bsoncore.AppendString(nil, d.Str), nil
	default:
		return bsontype.Null, nil, nil
	}
}

func (d *FlexDate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*d = FlexDate{}
		return nil
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("flexdate: corrupt string value")
		}
		*d = NewFlexDate(s)
		return nil
	case bsontype.DateTime:
		ms, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return fmt.Errorf("flexdate: corrupt datetime value")
		}
		*d = FlexDateFromSeconds(ms / 1000)
		return nil
	case bsontype.EmbeddedDocument:
		var obj struct {
			Seconds int64 `bson:"seconds"`
		}
		if err := bson.Unmarshal(data, &obj); err != nil {
			return err
		}
		*d = FlexDateFromSeconds(obj.Seconds)
		return nil
	default:
		return fmt.Errorf("flexdate: unsupported BSON type %s", t)
	}
}
