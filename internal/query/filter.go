// Package query turns optional list query parameters into a conjunctive
// MongoDB filter.
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind is how a parameter value is interpreted.
type Kind int

const (
	// String values match case-insensitively and exactly.
	String Kind = iota
	// Bool values are true only for the literal "true" (any case).
	Bool
	// Int values match exactly; values that do not parse are ignored.
	Int
	// Date values are an inclusive lower bound.
	Date
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Field maps a query parameter onto a document key.
type Field struct {
	Param string
	Key   string
	Kind  Kind
}

// Condition is a single constraint on one document key.
type Condition struct {
	Key   string
	Kind  Kind
	Text  string
	Flag  bool
	Num   int
	Since time.Time
}

// Filter is a set of conditions that must all hold.
type Filter []Condition

// Build collects a condition for each recognized field present in values.
// Parameters not named by fields are ignored.
func Build(fields []Field, values url.Values) Filter {
	filter := Filter{}
	for _, field := range fields {
		raw := strings.TrimSpace(values.Get(field.Param))
		if raw == "" {
			continue
		}

		cond := Condition{Key: field.Key, Kind: field.Kind}
		switch field.Kind {
		case String:
			cond.Text = strings.ToLower(raw)
		case Bool:
			cond.Flag = strings.ToLower(raw) == "true"
		case Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			cond.Num = n
		case Date:
			since, ok := parseDate(raw)
			if !ok {
				continue
			}
			cond.Since = since
		default:
			continue
		}
		filter = append(filter, cond)
	}
	return filter
}

// BSON renders the filter as a MongoDB query document.
func (f Filter) BSON() bson.D {
	doc := bson.D{}
	for _, cond := range f {
		switch cond.Kind {
		case String:
			doc = append(doc, bson.E{Key: cond.Key, Value: primitive.Regex{
				Pattern: "^" + regexp.QuoteMeta(cond.Text) + "$",
				Options: "i",
			}})
		case Bool:
			doc = append(doc, bson.E{Key: cond.Key, Value: cond.Flag})
		case Int:
			doc = append(doc, bson.E{Key: cond.Key, Value: cond.Num})
		case Date:
			doc = append(doc, bson.E{Key: cond.Key, Value: bson.D{{Key: "$gte", Value: cond.Since}}})
		}
	}
	return doc
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
