package repository

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultSearchLimit = 9
	DefaultAgentLimit  = 10
	defaultSortField   = "createdAt"
)

var sortableFields = map[string]bool{
	"createdAt":     true,
	"updatedAt":     true,
	"price":         true,
	"discountPrice": true,
	"name":          true,
}

// ListingQuery is the parsed form of the public search parameters.
// The boolean flags restrict results to true only when set; otherwise
// either value is accepted.
type ListingQuery struct {
	SearchTerm string
	Offer      bool
	Furnished  bool
	Parking    bool
	Type       string
	Limit      int64
	StartIndex int64
	Sort       string
	Ascending  bool
}

func ParseListingQuery(params url.Values) ListingQuery {
	q := ListingQuery{
		SearchTerm: params.Get("searchTerm"),
		Offer:      parseFlag(params.Get("offer")),
		Furnished:  parseFlag(params.Get("furnished")),
		Parking:    parseFlag(params.Get("parking")),
		Type:       params.Get("type"),
		Limit:      ParsePositive(params.Get("limit"), DefaultSearchLimit),
		StartIndex: ParseOffset(params.Get("startIndex")),
		Sort:       params.Get("sort"),
		Ascending:  params.Get("order") == "asc",
	}
	if q.Type == "all" {
		q.Type = ""
	}
	if !sortableFields[q.Sort] {
		q.Sort = defaultSortField
	}
	return q
}

func parseFlag(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// ParsePositive returns v as an integer, or fallback when v is missing,
// malformed or not positive.
func ParsePositive(v string, fallback int64) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func ParseOffset(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func BuildListingFilter(q ListingQuery) bson.M {
	filter := bson.M{
		"name": bson.M{"$regex": regexp.QuoteMeta(q.SearchTerm), "$options": "i"},
	}
	if q.Offer {
		filter["offer"] = true
	}
	if q.Furnished {
		filter["furnished"] = true
	}
	if q.Parking {
		filter["parking"] = true
	}
	if q.Type == "" {
		filter["type"] = bson.M{"$in": bson.A{"sale", "rent"}}
	} else {
		filter["type"] = q.Type
	}
	return filter
}

func (q ListingQuery) FindOptions() *options.FindOptions {
	dir := -1
	if q.Ascending {
		dir = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: q.Sort, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(q.StartIndex).
		SetLimit(q.Limit)
}

// CacheParams returns the normalized parameters identifying a result page.
func (q ListingQuery) CacheParams() map[string]string {
	order := "desc"
	if q.Ascending {
		order = "asc"
	}
	return map[string]string{
		"searchTerm": q.SearchTerm,
		"offer":      strconv.FormatBool(q.Offer),
		"furnished":  strconv.FormatBool(q.Furnished),
		"parking":    strconv.FormatBool(q.Parking),
		"type":       q.Type,
		"limit":      strconv.FormatInt(q.Limit, 10),
		"startIndex": strconv.FormatInt(q.StartIndex, 10),
		"sort":       q.Sort,
		"order":      order,
	}
}
