package models

import (
	"reflect"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func TestAggregateProjects(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rows []ProjectTechnologyRow
		want []ProjectWithTechnologies
	}{
		{
			name: "empty result set",
			rows: nil,
			want: []ProjectWithTechnologies{},
		},
		{
			name: "project without technologies gets an empty list",
			rows: []ProjectTechnologyRow{
				{ProjectID: 1, Name: "solo", Description: "d", CreatorID: 7, CreatorName: "alice", CreatedAt: now, UpdatedAt: now},
			},
			want: []ProjectWithTechnologies{
				{
					ID: 1, Name: "solo", Description: "d",
					Creator:      Creator{ID: 7, Name: "alice"},
					Technologies: []Technology{},
					CreatedAt:    now, UpdatedAt: now,
				},
			},
		},
		{
			name: "multiple rows fold into one project",
			rows: []ProjectTechnologyRow{
				{ProjectID: 1, Name: "p", CreatorID: 7, CreatorName: "alice", CreatedAt: now, UpdatedAt: now, TechnologyID: int64Ptr(1), TechnologyName: strPtr("Go")},
				{ProjectID: 1, Name: "p", CreatorID: 7, CreatorName: "alice", CreatedAt: now, UpdatedAt: now, TechnologyID: int64Ptr(2), TechnologyName: strPtr("Postgres")},
			},
			want: []ProjectWithTechnologies{
				{
					ID: 1, Name: "p",
					Creator: Creator{ID: 7, Name: "alice"},
					Technologies: []Technology{
						{ID: 1, Name: "Go"},
						{ID: 2, Name: "Postgres"},
					},
					CreatedAt: now, UpdatedAt: now,
				},
			},
		},
		{
			name: "projects keep first-seen order even when rows interleave",
			rows: []ProjectTechnologyRow{
				{ProjectID: 2, Name: "b", CreatorID: 7, TechnologyID: int64Ptr(1), TechnologyName: strPtr("Go")},
				{ProjectID: 1, Name: "a", CreatorID: 8, TechnologyID: int64Ptr(2), TechnologyName: strPtr("Rust")},
				{ProjectID: 2, Name: "b", CreatorID: 7, TechnologyID: int64Ptr(3), TechnologyName: strPtr("Redis")},
			},
			want: []ProjectWithTechnologies{
				{
					ID: 2, Name: "b",
					Creator: Creator{ID: 7},
					Technologies: []Technology{
						{ID: 1, Name: "Go"},
						{ID: 3, Name: "Redis"},
					},
				},
				{
					ID: 1, Name: "a",
					Creator:      Creator{ID: 8},
					Technologies: []Technology{{ID: 2, Name: "Rust"}},
				},
			},
		},
		{
			name: "mixed projects with and without technologies",
			rows: []ProjectTechnologyRow{
				{ProjectID: 1, Name: "a", CreatorID: 7, CreatorEmailHash: "abc123"},
				{ProjectID: 2, Name: "b", CreatorID: 7, CreatorEmailHash: "abc123", TechnologyID: int64Ptr(5), TechnologyName: strPtr("Go")},
			},
			want: []ProjectWithTechnologies{
				{
					ID: 1, Name: "a",
					Creator:      Creator{ID: 7, EmailHash: "abc123"},
					Technologies: []Technology{},
				},
				{
					ID: 2, Name: "b",
					Creator:      Creator{ID: 7, EmailHash: "abc123"},
					Technologies: []Technology{{ID: 5, Name: "Go"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateProjects(tt.rows)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AggregateProjects() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregateProjectsNeverReturnsNilTechnologies(t *testing.T) {
	rows := []ProjectTechnologyRow{{ProjectID: 1, Name: "a", CreatorID: 7}}

	got := AggregateProjects(rows)
	if got[0].Technologies == nil {
		t.Error("AggregateProjects() Technologies is nil, want empty slice")
	}
}
