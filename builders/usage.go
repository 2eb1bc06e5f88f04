package builders

import (
	"github.com/petrel-ai/petrel/core"
)

// UsageRequest selects a window of organization usage data. Times are Unix
// seconds; fields other than StartTime are optional filters.
type UsageRequest struct {
	StartTime   int64    `json:"start_time"`
	EndTime     *int64   `json:"end_time,omitempty"`
	BucketWidth string   `json:"bucket_width,omitempty"`
	ProjectIDs  []string `json:"project_ids,omitempty"`
	UserIDs     []string `json:"user_ids,omitempty"`
	APIKeyIDs   []string `json:"api_key_ids,omitempty"`
	Models      []string `json:"models,omitempty"`
	GroupBy     []string `json:"group_by,omitempty"`
	Limit       *int     `json:"limit,omitempty"`
	Page        string   `json:"page,omitempty"`
}

// UsageBuilder assembles an organization usage query.
type UsageBuilder struct {
	req UsageRequest
}

// NewUsage starts a usage query from a window start time in Unix seconds.
func NewUsage(startTime int64) *UsageBuilder {
	return &UsageBuilder{req: UsageRequest{StartTime: startTime}}
}

var _ core.Builder[UsageRequest] = (*UsageBuilder)(nil)

// EndTime bounds the window.
func (b *UsageBuilder) EndTime(t int64) *UsageBuilder {
	b.req.EndTime = &t
	return b
}

// BucketWidth sets aggregation granularity ("1m", "1h", or "1d").
func (b *UsageBuilder) BucketWidth(width string) *UsageBuilder {
	b.req.BucketWidth = width
	return b
}

func (b *UsageBuilder) ProjectIDs(ids ...string) *UsageBuilder {
	b.req.ProjectIDs = append(b.req.ProjectIDs, ids...)
	return b
}

func (b *UsageBuilder) UserIDs(ids ...string) *UsageBuilder {
	b.req.UserIDs = append(b.req.UserIDs, ids...)
	return b
}

func (b *UsageBuilder) APIKeyIDs(ids ...string) *UsageBuilder {
	b.req.APIKeyIDs = append(b.req.APIKeyIDs, ids...)
	return b
}

func (b *UsageBuilder) Models(models ...string) *UsageBuilder {
	b.req.Models = append(b.req.Models, models...)
	return b
}

// GroupBy adds grouping dimensions such as "model" or "project_id".
func (b *UsageBuilder) GroupBy(dimensions ...string) *UsageBuilder {
	b.req.GroupBy = append(b.req.GroupBy, dimensions...)
	return b
}

func (b *UsageBuilder) Limit(n int) *UsageBuilder {
	b.req.Limit = intPtr(n)
	return b
}

// Page sets the pagination cursor.
func (b *UsageBuilder) Page(cursor string) *UsageBuilder {
	b.req.Page = cursor
	return b
}

// Build validates and returns the wire request.
func (b *UsageBuilder) Build() (UsageRequest, error) {
	if b.req.StartTime <= 0 {
		return UsageRequest{}, &core.NotPositiveError{Field: "start_time", Actual: int(b.req.StartTime)}
	}
	if b.req.EndTime != nil && *b.req.EndTime <= b.req.StartTime {
		return UsageRequest{}, &core.InvalidRequestError{Message: "end_time must be after start_time"}
	}
	return b.req, nil
}
